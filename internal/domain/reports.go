package domain

// Read-only rows returned by the report queries that back both chat
// assistants. Joined job names come back as job_name.

type JobRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type ScheduleEventRow struct {
	ID          int64  `json:"id"`
	JobID       int64  `json:"job_id"`
	JobName     string `json:"job_name"`
	PhaseName   string `json:"phase_name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	AssignedTo  *int64 `json:"assigned_to"`
}

type WarrantyRow struct {
	ID              int64  `json:"id"`
	JobID           int64  `json:"job_id"`
	JobName         string `json:"job_name"`
	ItemDescription string `json:"item_description"`
	Manufacturer    string `json:"manufacturer"`
	WarrantyStart   string `json:"warranty_start"`
	WarrantyEnd     string `json:"warranty_end"`
	Status          string `json:"status"`
}

type ServiceCallRow struct {
	ID            int64   `json:"id"`
	JobID         *int64  `json:"job_id"`
	JobName       *string `json:"job_name"`
	CallerName    string  `json:"caller_name"`
	Description   string  `json:"description"`
	Priority      string  `json:"priority"`
	Status        string  `json:"status"`
	AssignedTo    *int64  `json:"assigned_to"`
	ScheduledDate string  `json:"scheduled_date"`
	CreatedAt     string  `json:"created_at"`
}

type TimeEntryRow struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	DisplayName string  `json:"display_name"`
	JobID       int64   `json:"job_id"`
	JobName     *string `json:"job_name"`
	Hours       float64 `json:"hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	WorkDate    string  `json:"work_date"`
	Description string  `json:"description"`
	Approved    bool    `json:"approved"`
	PayPeriod   string  `json:"pay_period"`
}

type InventoryRow struct {
	ID            int64   `json:"id"`
	JobID         int64   `json:"job_id"`
	JobName       string  `json:"job_name"`
	LineNumber    int     `json:"line_number"`
	SKU           string  `gorm:"column:sku" json:"sku"`
	Description   string  `json:"description"`
	QtyOrdered    float64 `json:"qty_ordered"`
	PricePer      float64 `json:"price_per"`
	TotalNetPrice float64 `json:"total_net_price"`
}

type BidRow struct {
	ID               int64   `json:"id"`
	BidName          string  `json:"bid_name"`
	Status           string  `json:"status"`
	TotalBid         float64 `json:"total_bid"`
	ProjectType      string  `json:"project_type"`
	ContractingGC    string  `gorm:"column:contracting_gc" json:"contracting_gc"`
	BidDate          string  `json:"bid_date"`
	BidSubmittedDate string  `json:"bid_submitted_date"`
	JobName          *string `json:"job_name"`
}

type StatusCount struct {
	Status string  `json:"status"`
	Count  int64   `gorm:"column:cnt" json:"count"`
	Total  float64 `json:"total,omitempty"`
}

type GCStats struct {
	ContractingGC string `gorm:"column:contracting_gc" json:"contracting_gc"`
	Count         int64  `gorm:"column:cnt" json:"count"`
	Accepted      int64  `json:"accepted"`
}

type SubmittalRow struct {
	ID              int64  `json:"id"`
	SubmittalNumber int    `json:"submittal_number"`
	SpecSection     string `json:"spec_section"`
	Description     string `json:"description"`
	Vendor          string `json:"vendor"`
	Status          string `json:"status"`
	RevisionNumber  int    `json:"revision_number"`
	DateSubmitted   string `json:"date_submitted"`
	DateRequired    string `json:"date_required"`
	JobName         string `json:"job_name"`
}

type RFIRow struct {
	ID            int64  `gorm:"column:id" json:"id"`
	RFINumber     int    `gorm:"column:rfi_number" json:"rfi_number"`
	Subject       string `json:"subject"`
	Status        string `json:"status"`
	DateSubmitted string `json:"date_submitted"`
	DateRequired  string `json:"date_required"`
	JobName       string `json:"job_name"`
}

type ChangeOrderRow struct {
	ID           int64   `json:"id"`
	CONumber     int     `gorm:"column:co_number" json:"co_number"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	ApprovedDate string  `json:"approved_date"`
	JobName      string  `json:"job_name"`
}

type CloseoutRow struct {
	ID       int64  `json:"id"`
	ItemName string `json:"item_name"`
	ItemType string `json:"item_type"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
	JobName  string `json:"job_name"`
}

type ContractRow struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Contractor   string  `json:"contractor"`
	ContractType string  `json:"contract_type"`
	Value        float64 `json:"value"`
	Status       string  `json:"status"`
	JobName      string  `json:"job_name"`
}

type PayAppContractRow struct {
	ID                  int64   `json:"id"`
	ProjectNo           string  `json:"project_no"`
	GCName              string  `gorm:"column:gc_name" json:"gc_name"`
	OriginalContractSum float64 `json:"original_contract_sum"`
	JobName             string  `json:"job_name"`
}

type CustomerRow struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
	CompanyType string `json:"company_type"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type SupplierQuoteRow struct {
	ID           int64   `json:"id"`
	SupplierName string  `json:"supplier_name"`
	QuoteNumber  string  `json:"quote_number"`
	Status       string  `json:"status"`
	Subtotal     float64 `json:"subtotal"`
	Total        float64 `json:"total"`
	JobName      string  `json:"job_name"`
}

type RecurringExpenseRow struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Vendor      string  `json:"vendor"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	NextDueDate string  `json:"next_due_date"`
	IsActive    bool    `json:"is_active"`
}

type ExpenseRow struct {
	ID          int64   `json:"id"`
	JobID       int64   `json:"job_id"`
	JobName     string  `json:"job_name"`
	Category    string  `json:"category"`
	Vendor      string  `json:"vendor"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	ExpenseDate string  `json:"expense_date"`
}

type CodeSectionHit struct {
	SectionNumber string `json:"section_number"`
	Title         string `json:"title"`
	Code          string `json:"code"`
}

type HowtoRow struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// JobFinancials is revenue and cost for one job.
type JobFinancials struct {
	Job          Job     `json:"job"`
	Expenses     float64 `json:"expenses"`
	Payments     float64 `json:"payments"`
	InvoicedPaid float64 `json:"invoiced_paid"`
	Labor        float64 `json:"labor"`
	Materials    float64 `json:"materials"`
}

// Revenue is paid invoices plus payments received.
func (f JobFinancials) Revenue() float64 { return f.InvoicedPaid + f.Payments }

// TotalCost is expenses, labor and materials.
func (f JobFinancials) TotalCost() float64 { return f.Expenses + f.Labor + f.Materials }
