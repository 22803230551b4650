package domain

// JobView is a job with its line items and derived ledger totals.
type JobView struct {
	Job       Job            `json:"job"`
	LineItems []LineItemView `json:"line_items"`
}

// LineItemView is a line item with derived totals and its ledger cells
// keyed by column number.
type LineItemView struct {
	ID              int64                `json:"id"`
	LineNumber      int                  `json:"line_number"`
	StockNS         string               `json:"stock_ns"`
	SKU             string               `json:"sku"`
	Description     string               `json:"description"`
	QuoteQty        float64              `json:"quote_qty"`
	QtyOrdered      float64              `json:"qty_ordered"`
	PricePer        float64              `json:"price_per"`
	TotalNetPrice   float64              `json:"total_net_price"`
	TotalReceived   float64              `json:"total_received"`
	TotalShipped    float64              `json:"total_shipped"`
	TotalInvoiced   float64              `json:"total_invoiced"`
	ReceivedEntries map[string]CellValue `json:"received_entries"`
	ShippedEntries  map[string]CellValue `json:"shipped_entries"`
	InvoicedEntries map[string]CellValue `json:"invoiced_entries"`
}

// CreateJobRequest creates a job. A nil TaxRate with a zip code triggers
// the tax lookup.
type CreateJobRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ZipCode         string   `json:"zip_code"`
	TaxRate         *float64 `json:"tax_rate" validate:"omitempty,gte=0"`
	SupplierAccount string   `json:"supplier_account"`
}

// UpdateJobRequest changes only the fields that are present.
type UpdateJobRequest struct {
	Name            *string  `json:"name"`
	Status          *string  `json:"status"`
	Address         *string  `json:"address"`
	City            *string  `json:"city"`
	State           *string  `json:"state"`
	ZipCode         *string  `json:"zip_code"`
	TaxRate         *float64 `json:"tax_rate" validate:"omitempty,gte=0"`
	SupplierAccount *string  `json:"supplier_account"`
}

// LineItemInput is an incoming master-list row. ID is set for rows that
// already exist.
type LineItemInput struct {
	ID            *int64  `json:"id"`
	LineNumber    int     `json:"line_number" validate:"gte=1"`
	StockNS       string  `json:"stock_ns"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	QuoteQty      float64 `json:"quote_qty"`
	QtyOrdered    float64 `json:"qty_ordered"`
	PricePer      float64 `json:"price_per"`
	TotalNetPrice float64 `json:"total_net_price"`
}

type ReplaceLineItemsRequest struct {
	LineItems []LineItemInput `json:"line_items" validate:"dive"`
}

// EntryInput is one ledger cell write. A zero quantity deletes the cell.
type EntryInput struct {
	LineItemID   int64   `json:"line_item_id"`
	ColumnNumber int     `json:"column_number"`
	Quantity     float64 `json:"quantity"`
}

type SaveEntriesRequest struct {
	Entries []EntryInput `json:"entries"`
}

// VersionSummary is a version log row without its snapshot.
type VersionSummary struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// VersionDetail is a version with its decoded snapshot.
type VersionDetail struct {
	ID          int64    `json:"id"`
	Description string   `json:"description"`
	CreatedAt   string   `json:"created_at"`
	Snapshot    Snapshot `json:"snapshot"`
}

// QuoteLine is a line parsed from a supplier quote PDF, returned for
// review before anything is written.
type QuoteLine struct {
	LineNumber    int     `json:"line_number"`
	StockNS       string  `json:"stock_ns"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	QuoteQty      float64 `json:"quote_qty"`
	QtyOrdered    float64 `json:"qty_ordered"`
	PricePer      float64 `json:"price_per"`
	TotalNetPrice float64 `json:"total_net_price"`
}

type QuoteImportResponse struct {
	Items []QuoteLine `json:"items"`
	Count int         `json:"count"`
}

// TaxInfo is the result of a postal code tax lookup.
type TaxInfo struct {
	TaxRate float64 `json:"tax_rate"`
	City    string  `json:"city"`
	State   string  `json:"state"`
}

// StageAnalytics aggregates the jobs in one pipeline stage.
type StageAnalytics struct {
	Count    int                `json:"count"`
	Jobs     []JobCostBreakdown `json:"jobs"`
	Subtotal float64            `json:"subtotal"`
	Tax      float64            `json:"tax"`
	Shipping float64            `json:"shipping"`
	Total    float64            `json:"total"`
}

type JobCostBreakdown struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type Analytics struct {
	Stages        map[string]*StageAnalytics `json:"stages"`
	StageOrder    []string                   `json:"stage_order"`
	GrandSubtotal float64                    `json:"grand_subtotal"`
	GrandTax      float64                    `json:"grand_tax"`
	GrandShipping float64                    `json:"grand_shipping"`
	GrandTotal    float64                    `json:"grand_total"`
}

// Duplicate check outcomes.
const (
	DuplicateExact = "exact"
	DuplicateNear  = "near"
	DuplicateNone  = "none"
)

// DuplicateMatch is an existing document row that matches an upload.
type DuplicateMatch struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
	Table  string `json:"table,omitempty"`
}

type DuplicateResult struct {
	IsDuplicate bool             `json:"is_duplicate"`
	MatchType   string           `json:"match_type"`
	Matches     []DuplicateMatch `json:"matches"`
	FileHash    string           `json:"file_hash"`
	Metadata    *DocumentMeta    `json:"metadata,omitempty"`
}

// DocumentMeta is the metadata a model extracts from a PDF for
// near-duplicate matching.
type DocumentMeta struct {
	Title           string `json:"title"`
	Vendor          string `json:"vendor"`
	ReferenceNumber string `json:"reference_number"`
	ProjectName     string `json:"project_name"`
	DocType         string `json:"doc_type"`
}

// ParsedInvoice is an invoice assembled from CSV headers and PDF pages
// before it is written.
type ParsedInvoice struct {
	InvoiceNumber   string            `json:"invoice_number"`
	InvoiceDate     string            `json:"invoice_date"`
	DueDate         string            `json:"due_date"`
	PONumber        string            `json:"po_number"`
	Terms           string            `json:"terms"`
	DiscountMessage string            `json:"discount_message"`
	DiscountAmount  Number            `json:"discount_amount"`
	Subtotal        Number            `json:"subtotal"`
	TaxAmount       Number            `json:"tax_amount"`
	Total           Number            `json:"total"`
	ShipToName      string            `json:"ship_to_name"`
	ShipToAddress   string            `json:"ship_to_address"`
	LineItems       []InvoiceLineItem `json:"line_items"`
	JobID           *int64            `json:"job_id,omitempty"`
}

// ImportStats counts invoice upsert outcomes.
type ImportStats struct {
	New     int `json:"new"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
	Total   int `json:"total"`
}

// ImportedInvoice summarizes one written invoice.
type ImportedInvoice struct {
	InvoiceNumber string  `json:"invoice_number"`
	Total         float64 `json:"total"`
	LineItemCount int     `json:"line_item_count"`
	IsNew         bool    `json:"is_new"`
	JobLinked     bool    `json:"job_linked"`
}

// ReviewFlag is one anomaly reported by the invoice review.
type ReviewFlag struct {
	InvoiceNumber string `json:"invoice_number"`
	Severity      string `json:"severity"`
	Category      string `json:"category"`
	Message       string `json:"message"`
}

// JobLink records an automatic invoice-to-job link.
type JobLink struct {
	InvoiceNumber string `json:"invoice_number"`
	JobID         int64  `json:"job_id"`
	JobName       string `json:"job_name"`
	Score         int    `json:"score"`
}

type ImportResult struct {
	Stats    ImportStats       `json:"stats"`
	Invoices []ImportedInvoice `json:"invoices"`
	AIFlags  []ReviewFlag      `json:"ai_flags"`
	JobLinks []JobLink         `json:"job_links"`
}

// SyncStats reports a supplier API sync.
type SyncStats struct {
	New     int `json:"new"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
	Errors  int `json:"errors"`
}

type ConnectionTestResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SupplierName string `json:"supplier_name,omitempty"`
	Mock         bool   `json:"mock"`
}

type LinkInvoiceRequest struct {
	JobID *int64 `json:"job_id"`
}

// BidCalculation holds every derived bid value.
type BidCalculation struct {
	TotalSystems          float64 `json:"total_systems"`
	ManHoursPerSystem     float64 `json:"man_hours_per_system"`
	TotalManHours         float64 `json:"total_man_hours"`
	DurationDays          float64 `json:"duration_days"`
	NumWeeks              float64 `json:"num_weeks"`
	LaborCost             float64 `json:"labor_cost"`
	PerDiemRate           float64 `json:"per_diem_rate"`
	PerDiemTotal          float64 `json:"per_diem_total"`
	TotalCostToBuild      float64 `json:"total_cost_to_build"`
	Subtotal              float64 `json:"subtotal"`
	CompanyProfit         float64 `json:"company_profit"`
	TotalBid              float64 `json:"total_bid"`
	NetProfit             float64 `json:"net_profit"`
	CostPerApartment      float64 `json:"cost_per_apartment"`
	CostPerSystem         float64 `json:"cost_per_system"`
	LaborCostPerApartment float64 `json:"labor_cost_per_apartment"`
	LaborCostPerSystem    float64 `json:"labor_cost_per_system"`
	SuggestedApartmentBid float64 `json:"suggested_apartment_bid"`
	SuggestedClubhouseBid float64 `json:"suggested_clubhouse_bid"`
}

// BidInputs are the recognized calculator options.
type BidInputs struct {
	NumApartments          int     `json:"num_apartments" validate:"gte=0"`
	NumNonApartmentSystems int     `json:"num_non_apartment_systems" validate:"gte=0"`
	NumMiniSplits          int     `json:"num_mini_splits" validate:"gte=0"`
	HasClubhouse           bool    `json:"has_clubhouse"`
	ClubhouseSystems       int     `json:"clubhouse_systems" validate:"gte=0"`
	RoughInHours           float64 `json:"rough_in_hours" validate:"gte=0"`
	AHUInstallHours        float64 `json:"ahu_install_hours" validate:"gte=0"`
	CondenserInstallHours  float64 `json:"condenser_install_hours" validate:"gte=0"`
	TrimOutHours           float64 `json:"trim_out_hours" validate:"gte=0"`
	StartupHours           float64 `json:"startup_hours" validate:"gte=0"`
	CrewSize               int     `json:"crew_size" validate:"gte=0"`
	HoursPerDay            float64 `json:"hours_per_day" validate:"gte=0"`
	LaborRatePerHour       float64 `json:"labor_rate_per_hour" validate:"gte=0"`
	LaborCostPerUnit       float64 `json:"labor_cost_per_unit" validate:"gte=0"`
	JobMileage             float64 `json:"job_mileage" validate:"gte=0"`
	PerDiemRate            float64 `json:"per_diem_rate" validate:"gte=0"`
	MaterialCost           float64 `json:"material_cost"`
	InsuranceCost          float64 `json:"insurance_cost"`
	PermitCost             float64 `json:"permit_cost"`
	ManagementFee          float64 `json:"management_fee"`
	CompanyProfitPct       float64 `json:"company_profit_pct"`
}

// BidRequest creates or updates a bid. Derived totals are never accepted
// from the client.
type BidRequest struct {
	BidInputs
	BidName          string  `json:"bid_name" validate:"required,max=200"`
	JobID            *int64  `json:"job_id"`
	Status           string  `json:"status"`
	ProjectType      string  `json:"project_type"`
	ClubhouseTons    float64 `json:"clubhouse_tons"`
	TotalTons        float64 `json:"total_tons"`
	PricePerTon      float64 `json:"price_per_ton"`
	PaySchedulePct   float64 `json:"pay_schedule_pct"`
	ContractingGC    string  `json:"contracting_gc"`
	GCAttention      string  `json:"gc_attention"`
	BidNumber        string  `json:"bid_number"`
	BidDate          string  `json:"bid_date"`
	BidWorkupDate    string  `json:"bid_workup_date"`
	BidDueDate       string  `json:"bid_due_date"`
	BidSubmittedDate string  `json:"bid_submitted_date"`
	LeadName         string  `json:"lead_name"`
	Inclusions       string  `json:"inclusions"`
	Exclusions       string  `json:"exclusions"`
	BidDescription   string  `json:"bid_description"`
	Notes            string  `json:"notes"`
}

// CreateServiceCallRequest opens a service call.
type CreateServiceCallRequest struct {
	JobID         *int64 `json:"job_id"`
	CallerName    string `json:"caller_name"`
	CallerPhone   string `json:"caller_phone"`
	CallerEmail   string `json:"caller_email" validate:"omitempty,email"`
	Description   string `json:"description" validate:"required"`
	Priority      string `json:"priority" validate:"omitempty,oneof=Low Normal High Urgent"`
	AssignedTo    *int64 `json:"assigned_to"`
	ScheduledDate string `json:"scheduled_date"`
}

type UpdateServiceCallStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=Open Assigned 'In Progress' Resolved Closed"`
	Resolution string `json:"resolution"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed-in user and the session token for
// clients that cannot keep cookies.
type LoginResponse struct {
	OK    bool        `json:"ok"`
	User  CurrentUser `json:"user"`
	Token string      `json:"token"`
}

// CurrentUser is the session identity returned to clients.
type CurrentUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

type CreateUserRequest struct {
	Username    string  `json:"username" validate:"required,max=100"`
	Password    string  `json:"password" validate:"required,min=4"`
	DisplayName string  `json:"display_name"`
	Role        Role    `json:"role" validate:"required,oneof=owner admin project_manager warehouse employee"`
	Email       string  `json:"email" validate:"omitempty,email"`
	Phone       string  `json:"phone"`
	HourlyRate  float64 `json:"hourly_rate" validate:"gte=0"`
}

type UpdateUserRequest struct {
	DisplayName *string  `json:"display_name"`
	Password    *string  `json:"password" validate:"omitempty,min=4"`
	Role        *Role    `json:"role" validate:"omitempty,oneof=owner admin project_manager warehouse employee"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone"`
	HourlyRate  *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
}

type CreateChatSessionRequest struct {
	Title string `json:"title"`
}

type PostChatMessageRequest struct {
	Content string `json:"content"`
}

// ChatReply is returned after a chat message is answered.
type ChatReply struct {
	OK       bool   `json:"ok"`
	Response string `json:"response"`
}

type UnreadCount struct {
	Count int64 `json:"count"`
}

// OKResponse acknowledges a write with no other payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

type CreatedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}
