package domain

import (
	"gorm.io/datatypes"
)

// Job status values. Jobs move through these four pipeline stages.
const (
	JobStatusNeedsBid    = "Needs Bid"
	JobStatusBidComplete = "Bid Complete"
	JobStatusInProgress  = "In Progress"
	JobStatusComplete    = "Complete"
)

// JobStages lists the pipeline stages in display order.
var JobStages = []string{
	JobStatusNeedsBid,
	JobStatusBidComplete,
	JobStatusInProgress,
	JobStatusComplete,
}

// IsJobStage reports whether status is one of the four pipeline stages.
func IsJobStage(status string) bool {
	for _, s := range JobStages {
		if s == status {
			return true
		}
	}
	return false
}

// Job is the root aggregate for materials, accounting and versions.
type Job struct {
	ID              int64   `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"not null" json:"name"`
	Status          string  `gorm:"not null" json:"status"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	ZipCode         string  `gorm:"column:zip_code" json:"zip_code"`
	TaxRate         float64 `json:"tax_rate"`
	SupplierAccount string  `json:"supplier_account"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

// LineItem is one row of a job's master materials list.
type LineItem struct {
	ID            int64   `gorm:"primaryKey" json:"id"`
	JobID         int64   `gorm:"not null;index" json:"job_id"`
	LineNumber    int     `gorm:"not null" json:"line_number"`
	StockNS       string  `gorm:"column:stock_ns" json:"stock_ns"`
	SKU           string  `gorm:"column:sku" json:"sku"`
	Description   string  `json:"description"`
	QuoteQty      float64 `json:"quote_qty"`
	QtyOrdered    float64 `json:"qty_ordered"`
	PricePer      float64 `json:"price_per"`
	TotalNetPrice float64 `json:"total_net_price"`
}

func (LineItem) TableName() string { return "line_items" }

// NetPrice returns the stored net price, or qty_ordered × price_per when
// none was stored.
func (li LineItem) NetPrice() float64 {
	if li.TotalNetPrice != 0 {
		return li.TotalNetPrice
	}
	return li.QtyOrdered * li.PricePer
}

// LedgerKind selects one of the three parallel 15-column ledgers.
type LedgerKind string

const (
	LedgerReceived LedgerKind = "received"
	LedgerShipped  LedgerKind = "shipped"
	LedgerInvoiced LedgerKind = "invoiced"
)

// LedgerKinds lists every ledger variant.
var LedgerKinds = []LedgerKind{LedgerReceived, LedgerShipped, LedgerInvoiced}

// MaxLedgerColumn is the highest column number in a ledger grid.
const MaxLedgerColumn = 15

// ParseLedgerKind validates a ledger name.
func ParseLedgerKind(s string) (LedgerKind, bool) {
	switch LedgerKind(s) {
	case LedgerReceived, LedgerShipped, LedgerInvoiced:
		return LedgerKind(s), true
	}
	return "", false
}

// Table returns the entry table backing the ledger.
func (k LedgerKind) Table() string {
	return string(k) + "_entries"
}

// LedgerEntry is one ledger cell. The table depends on the ledger kind.
type LedgerEntry struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	LineItemID   int64   `gorm:"not null" json:"line_item_id"`
	ColumnNumber int     `gorm:"not null" json:"column_number"`
	Quantity     float64 `json:"quantity"`
	EntryDate    string  `json:"entry_date"`
}

// Version is a stored job snapshot.
type Version struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	JobID       int64          `gorm:"not null;index" json:"job_id"`
	Snapshot    datatypes.JSON `gorm:"not null" json:"snapshot,omitempty"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
}

func (Version) TableName() string { return "versions" }

// Snapshot is the self-contained state of a job written to the version log.
type Snapshot struct {
	Job       SnapshotJob        `json:"job"`
	LineItems []SnapshotLineItem `json:"line_items"`
}

type SnapshotJob struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	ZipCode string  `json:"zip_code"`
	TaxRate float64 `json:"tax_rate"`
}

type SnapshotLineItem struct {
	LineNumber    int                  `json:"line_number"`
	StockNS       string               `json:"stock_ns"`
	SKU           string               `json:"sku"`
	Description   string               `json:"description"`
	QuoteQty      float64              `json:"quote_qty"`
	QtyOrdered    float64              `json:"qty_ordered"`
	PricePer      float64              `json:"price_per"`
	TotalNetPrice float64              `json:"total_net_price"`
	Received      map[string]CellValue `json:"received"`
	Shipped       map[string]CellValue `json:"shipped"`
	Invoiced      map[string]CellValue `json:"invoiced"`
}

// Cells returns the snapshot cells for a ledger kind.
func (s *SnapshotLineItem) Cells(kind LedgerKind) map[string]CellValue {
	switch kind {
	case LedgerShipped:
		return s.Shipped
	case LedgerInvoiced:
		return s.Invoiced
	default:
		return s.Received
	}
}

// SetCells replaces the snapshot cells for a ledger kind.
func (s *SnapshotLineItem) SetCells(kind LedgerKind, cells map[string]CellValue) {
	switch kind {
	case LedgerShipped:
		s.Shipped = cells
	case LedgerInvoiced:
		s.Invoiced = cells
	default:
		s.Received = cells
	}
}

// CellValue is the content of a ledger cell keyed by column number.
type CellValue struct {
	Quantity  float64 `json:"quantity"`
	EntryDate string  `json:"entry_date"`
}

// User is an application login.
type User struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"not null;uniqueIndex" json:"username"`
	DisplayName  string  `json:"display_name"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Role         Role    `gorm:"not null" json:"role"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	HourlyRate   float64 `json:"hourly_rate"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// TimeEntry is hours logged by a user against a job.
type TimeEntry struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	UserID      int64   `gorm:"not null" json:"user_id"`
	JobID       int64   `gorm:"not null" json:"job_id"`
	Hours       float64 `json:"hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	WorkDate    string  `json:"work_date"`
	Description string  `json:"description"`
	Approved    bool    `json:"approved"`
	ApprovedBy  *int64  `json:"approved_by"`
	PayPeriod   string  `json:"pay_period"`
}

func (TimeEntry) TableName() string { return "time_entries" }

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationTypeSystem      NotificationType = "system"
	NotificationTypeServiceCall NotificationType = "service_call"
	NotificationTypeLicense     NotificationType = "license"
	NotificationTypeWarranty    NotificationType = "warranty"
	NotificationTypeInvoice     NotificationType = "invoice"
)

// Notification is an append-only per-user message.
type Notification struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	UserID    int64  `gorm:"not null;index" json:"user_id"`
	Type      string `gorm:"not null" json:"type"`
	Title     string `gorm:"not null" json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// DefaultChatTitle is the title of a session before its first message.
const DefaultChatTitle = "New Chat"

// ChatSession groups a user's assistant conversation.
type ChatSession struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	UserID    int64  `gorm:"not null;index" json:"user_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

func (ChatSession) TableName() string { return "chat_sessions" }

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	SessionID int64  `gorm:"not null;index" json:"session_id"`
	Role      string `gorm:"not null" json:"role"`
	Content   string `gorm:"not null" json:"content"`
	CreatedAt string `json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// Service call priorities and statuses.
const (
	PriorityLow    = "Low"
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"

	ServiceCallOpen       = "Open"
	ServiceCallAssigned   = "Assigned"
	ServiceCallInProgress = "In Progress"
	ServiceCallResolved   = "Resolved"
	ServiceCallClosed     = "Closed"
)

// ServiceCall is a customer request for service, optionally tied to a job.
type ServiceCall struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	JobID         *int64 `json:"job_id"`
	CallerName    string `json:"caller_name"`
	CallerPhone   string `json:"caller_phone"`
	CallerEmail   string `json:"caller_email"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	AssignedTo    *int64 `json:"assigned_to"`
	Resolution    string `json:"resolution"`
	ScheduledDate string `json:"scheduled_date"`
	ResolvedDate  string `json:"resolved_date"`
	CreatedBy     *int64 `json:"created_by"`
	CreatedAt     string `json:"created_at"`
}

func (ServiceCall) TableName() string { return "service_calls" }

// Bid is a cost estimate for a prospective installation. The derived
// fields are recomputed from the inputs on every save.
type Bid struct {
	ID                     int64   `gorm:"primaryKey" json:"id"`
	JobID                  *int64  `json:"job_id"`
	BidName                string  `gorm:"not null" json:"bid_name"`
	Status                 string  `json:"status"`
	ProjectType            string  `json:"project_type"`
	NumApartments          int     `json:"num_apartments"`
	NumNonApartmentSystems int     `json:"num_non_apartment_systems"`
	NumMiniSplits          int     `json:"num_mini_splits"`
	HasClubhouse           bool    `json:"has_clubhouse"`
	ClubhouseSystems       int     `json:"clubhouse_systems"`
	ClubhouseTons          float64 `json:"clubhouse_tons"`
	TotalTons              float64 `json:"total_tons"`
	PricePerTon            float64 `json:"price_per_ton"`
	MaterialCost           float64 `json:"material_cost"`
	RoughInHours           float64 `json:"rough_in_hours"`
	AHUInstallHours        float64 `gorm:"column:ahu_install_hours" json:"ahu_install_hours"`
	CondenserInstallHours  float64 `json:"condenser_install_hours"`
	TrimOutHours           float64 `json:"trim_out_hours"`
	StartupHours           float64 `json:"startup_hours"`
	CrewSize               int     `json:"crew_size"`
	HoursPerDay            float64 `json:"hours_per_day"`
	LaborRatePerHour       float64 `json:"labor_rate_per_hour"`
	LaborCostPerUnit       float64 `json:"labor_cost_per_unit"`
	JobMileage             float64 `json:"job_mileage"`
	PerDiemRate            float64 `json:"per_diem_rate"`
	InsuranceCost          float64 `json:"insurance_cost"`
	PermitCost             float64 `json:"permit_cost"`
	ManagementFee          float64 `json:"management_fee"`
	PaySchedulePct         float64 `json:"pay_schedule_pct"`
	CompanyProfitPct       float64 `json:"company_profit_pct"`

	TotalSystems          float64 `json:"total_systems"`
	ManHoursPerSystem     float64 `json:"man_hours_per_system"`
	TotalManHours         float64 `json:"total_man_hours"`
	DurationDays          float64 `json:"duration_days"`
	NumWeeks              float64 `json:"num_weeks"`
	LaborCost             float64 `json:"labor_cost"`
	PerDiemDays           float64 `json:"per_diem_days"`
	PerDiemTotal          float64 `json:"per_diem_total"`
	Subtotal              float64 `json:"subtotal"`
	TotalCostToBuild      float64 `json:"total_cost_to_build"`
	CompanyProfit         float64 `json:"company_profit"`
	TotalBid              float64 `json:"total_bid"`
	NetProfit             float64 `json:"net_profit"`
	CostPerApartment      float64 `json:"cost_per_apartment"`
	CostPerSystem         float64 `json:"cost_per_system"`
	LaborCostPerApartment float64 `json:"labor_cost_per_apartment"`
	LaborCostPerSystem    float64 `json:"labor_cost_per_system"`
	SuggestedApartmentBid float64 `json:"suggested_apartment_bid"`
	SuggestedClubhouseBid float64 `json:"suggested_clubhouse_bid"`

	ContractingGC    string `gorm:"column:contracting_gc" json:"contracting_gc"`
	GCAttention      string `gorm:"column:gc_attention" json:"gc_attention"`
	BidNumber        string `json:"bid_number"`
	BidDate          string `json:"bid_date"`
	BidWorkupDate    string `json:"bid_workup_date"`
	BidDueDate       string `json:"bid_due_date"`
	BidSubmittedDate string `json:"bid_submitted_date"`
	LeadName         string `json:"lead_name"`
	Inclusions       string `json:"inclusions"`
	Exclusions       string `json:"exclusions"`
	BidDescription   string `json:"bid_description"`
	Notes            string `json:"notes"`
	CreatedBy        *int64 `json:"created_by"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func (Bid) TableName() string { return "bids" }

// SupplierConfig holds the credentials for one supplier's invoice API.
type SupplierConfig struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	SupplierName string  `gorm:"not null" json:"supplier_name"`
	ClientID     string  `json:"client_id"`
	ClientSecret string  `json:"-"`
	IsActive     bool    `json:"is_active"`
	UseMock      bool    `json:"use_mock"`
	LastSyncAt   *string `json:"last_sync_at"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (SupplierConfig) TableName() string { return "supplier_configs" }

// MockMode reports whether the config should use generated invoices.
func (c SupplierConfig) MockMode() bool {
	return c.UseMock || c.ClientID == "" || c.ClientSecret == ""
}

// SupplierInvoice is an invoice received from a supplier. The pair
// (invoice_number, supplier_config_id) is unique.
type SupplierInvoice struct {
	ID               int64          `gorm:"primaryKey" json:"id"`
	SupplierConfigID int64          `gorm:"not null" json:"supplier_config_id"`
	ExternalID       string         `json:"external_id"`
	InvoiceNumber    string         `gorm:"not null" json:"invoice_number"`
	InvoiceDate      string         `json:"invoice_date"`
	DueDate          string         `json:"due_date"`
	Status           string         `json:"status"`
	PONumber         string         `gorm:"column:po_number" json:"po_number"`
	Terms            string         `json:"terms"`
	DiscountAmount   float64        `json:"discount_amount"`
	Subtotal         float64        `json:"subtotal"`
	TaxAmount        float64        `json:"tax_amount"`
	Total            float64        `json:"total"`
	AmountPaid       float64        `json:"amount_paid"`
	BalanceDue       float64        `json:"balance_due"`
	PaidDate         *string        `json:"paid_date"`
	ShipToName       string         `json:"ship_to_name"`
	ShipToAddress    string         `json:"ship_to_address"`
	LineItems        datatypes.JSON `json:"line_items"`
	JobID            *int64         `json:"job_id"`
	Notes            string         `json:"notes"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}

func (SupplierInvoice) TableName() string { return "supplier_invoices" }

// Supplier invoice statuses.
const (
	InvoiceStatusOpen    = "Open"
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusOverdue = "Overdue"
)

// InvoiceLineItem is one line of a supplier invoice. Quantities come from
// model output and supplier APIs, so numeric fields accept strings too.
type InvoiceLineItem struct {
	LineNumber     Number `json:"line_number,omitempty"`
	ProductCode    string `json:"product_code"`
	Description    string `json:"description"`
	Quantity       Number `json:"quantity,omitempty"`
	QtyOrdered     Number `json:"qty_ordered"`
	QtyBackordered Number `json:"qty_backordered"`
	QtyShipped     Number `json:"qty_shipped"`
	Unit           string `json:"unit,omitempty"`
	UnitPrice      Number `json:"unit_price"`
	ExtendedPrice  Number `json:"extended_price"`
}

// BilledQty is the quantity the extended price is based on.
func (li InvoiceLineItem) BilledQty() float64 {
	if li.QtyShipped != 0 {
		return float64(li.QtyShipped)
	}
	if li.QtyOrdered != 0 {
		return float64(li.QtyOrdered)
	}
	return float64(li.Quantity)
}

// Warranty and license statuses.
const (
	WarrantyActive       = "Active"
	WarrantyExpiringSoon = "Expiring Soon"
	WarrantyExpired      = "Expired"
	WarrantyClaimed      = "Claimed"

	LicenseActive         = "Active"
	LicenseExpiringSoon   = "Expiring Soon"
	LicenseExpired        = "Expired"
	LicensePendingRenewal = "Pending Renewal"
)

// WarrantyItem tracks manufacturer coverage for installed equipment.
type WarrantyItem struct {
	ID              int64  `gorm:"primaryKey" json:"id"`
	JobID           int64  `json:"job_id"`
	ItemDescription string `json:"item_description"`
	Manufacturer    string `json:"manufacturer"`
	WarrantyStart   string `json:"warranty_start"`
	WarrantyEnd     string `json:"warranty_end"`
	CoverageDetails string `json:"coverage_details"`
	Status          string `json:"status"`
}

func (WarrantyItem) TableName() string { return "warranty_items" }

// License is a company or employee license or certification.
type License struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	LicenseType    string  `json:"license_type"`
	LicenseName    string  `json:"license_name"`
	LicenseNumber  string  `json:"license_number"`
	IssuingBody    string  `json:"issuing_body"`
	HolderName     string  `json:"holder_name"`
	IssueDate      string  `json:"issue_date"`
	ExpirationDate string  `json:"expiration_date"`
	RenewalCost    float64 `json:"renewal_cost"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
	FilePath       string  `json:"file_path"`
	FileHash       string  `json:"file_hash"`
}

func (License) TableName() string { return "licenses" }

// Expiry statuses shared by licenses and warranty items.
const (
	StatusActive       = "Active"
	StatusExpiringSoon = "Expiring Soon"
	StatusExpired      = "Expired"
)
