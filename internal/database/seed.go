package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultSuppliers are created in mock mode so supplier sync works without
// real API credentials.
var DefaultSuppliers = []string{"Locke Supply", "Plumb Supply"}

// Seed inserts the bootstrap owner account, the standard code books and the
// default supplier configurations when their tables are empty.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	tx := db.WithContext(ctx)

	var users int64
	if err := tx.Table("users").Count(&users).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if users == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash bootstrap password: %w", err)
		}
		err = tx.Exec(
			"INSERT INTO users (username, display_name, password_hash, role, email) VALUES (?, ?, ?, ?, ?)",
			"admin", "Administrator", string(hash), "owner", "",
		).Error
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		if log != nil {
			log.Warn("Seeded default admin account; change its password")
		}
	}

	var books int64
	if err := tx.Table("code_books").Count(&books).Error; err != nil {
		return fmt.Errorf("failed to count code books: %w", err)
	}
	if books == 0 {
		if err := seedCodeBooks(tx); err != nil {
			return err
		}
	}

	for _, name := range DefaultSuppliers {
		var n int64
		if err := tx.Table("supplier_configs").Where("supplier_name = ?", name).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to look up supplier %s: %w", name, err)
		}
		if n > 0 {
			continue
		}
		err := tx.Exec(
			"INSERT INTO supplier_configs (supplier_name, client_id, client_secret, use_mock) VALUES (?, '', '', 1)",
			name,
		).Error
		if err != nil {
			return fmt.Errorf("failed to seed supplier %s: %w", name, err)
		}
	}

	return nil
}

func seedCodeBooks(tx *gorm.DB) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		for _, book := range standardCodeBooks {
			row := codeBookRow{Code: book.code, Name: book.name, Edition: book.edition, Description: book.description}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed code book %s: %w", book.code, err)
			}
			for i, ch := range book.chapters {
				err := tx.Exec(
					`INSERT INTO code_sections (book_id, section_number, title, parent_section_id, depth, sort_order)
					 VALUES (?, ?, ?, NULL, 0, ?)`,
					row.ID, ch[0], ch[1], i,
				).Error
				if err != nil {
					return fmt.Errorf("failed to seed %s chapter %s: %w", book.code, ch[0], err)
				}
			}
		}
		return nil
	})
}

type codeBookRow struct {
	ID          int64 `gorm:"primaryKey"`
	Code        string
	Name        string
	Edition     string
	Description string
}

func (codeBookRow) TableName() string { return "code_books" }
