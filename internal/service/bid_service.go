package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

// Defaults stored on a bid when the request leaves them empty.
const (
	DefaultBidStatus      = "Draft"
	DefaultProjectType    = "Multi-Family"
	DefaultLaborRate      = 37
	DefaultPaySchedulePct = 0.33
)

// BidService stores bids and keeps their derived totals in sync with the
// calculator.
type BidService struct {
	bidRepo *repository.BidRepository
	logger  *zap.Logger
}

// NewBidService creates a new bid service instance
func NewBidService(bidRepo *repository.BidRepository, logger *zap.Logger) *BidService {
	return &BidService{bidRepo: bidRepo, logger: logger}
}

// Calculate runs the calculator without saving anything.
func (s *BidService) Calculate(in domain.BidInputs) domain.BidCalculation {
	return CalculateBid(in)
}

func (s *BidService) List(ctx context.Context, status string) ([]domain.Bid, error) {
	bids, err := s.bidRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

func (s *BidService) Get(ctx context.Context, id int64) (*domain.Bid, error) {
	bid, err := s.bidRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return bid, nil
}

// Create stores a new bid with its computed totals.
func (s *BidService) Create(ctx context.Context, req *domain.BidRequest, createdBy *int64) (*domain.Bid, error) {
	bid := &domain.Bid{CreatedBy: createdBy}
	if err := applyBidRequest(bid, req); err != nil {
		return nil, err
	}
	if err := s.bidRepo.Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to create bid: %w", err)
	}
	s.logger.Info("Bid created",
		zap.Int64("bidID", bid.ID),
		zap.String("name", bid.BidName),
		zap.Float64("totalBid", bid.TotalBid),
	)
	return bid, nil
}

// Update replaces the inputs of an existing bid and recomputes its totals.
func (s *BidService) Update(ctx context.Context, id int64, req *domain.BidRequest) (*domain.Bid, error) {
	bid, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyBidRequest(bid, req); err != nil {
		return nil, err
	}
	if err := s.bidRepo.Save(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to update bid: %w", err)
	}
	return bid, nil
}

func (s *BidService) Delete(ctx context.Context, id int64) error {
	if err := s.bidRepo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrBidNotFound
		}
		return fmt.Errorf("failed to delete bid: %w", err)
	}
	s.logger.Info("Bid deleted", zap.Int64("bidID", id))
	return nil
}

func defaultString(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

// applyBidRequest copies the request onto bid with defaults applied and
// overwrites every derived column from the calculator.
func applyBidRequest(bid *domain.Bid, req *domain.BidRequest) error {
	name := strings.TrimSpace(req.BidName)
	if name == "" {
		return fmt.Errorf("%w: Bid name is required", ErrInvalidInput)
	}

	in := req.BidInputs
	if in.LaborRatePerHour == 0 {
		in.LaborRatePerHour = DefaultLaborRate
	}
	in = ApplyBidDefaults(in)
	calc := CalculateBid(in)

	bid.BidName = name
	bid.JobID = req.JobID
	bid.Status = defaultString(req.Status, DefaultBidStatus)
	bid.ProjectType = defaultString(req.ProjectType, DefaultProjectType)
	bid.ClubhouseTons = req.ClubhouseTons
	bid.TotalTons = req.TotalTons
	bid.PricePerTon = req.PricePerTon
	bid.PaySchedulePct = req.PaySchedulePct
	if bid.PaySchedulePct == 0 {
		bid.PaySchedulePct = DefaultPaySchedulePct
	}
	bid.ContractingGC = req.ContractingGC
	bid.GCAttention = req.GCAttention
	bid.BidNumber = req.BidNumber
	bid.BidDate = req.BidDate
	bid.BidWorkupDate = req.BidWorkupDate
	bid.BidDueDate = req.BidDueDate
	bid.BidSubmittedDate = req.BidSubmittedDate
	bid.LeadName = req.LeadName
	bid.Inclusions = req.Inclusions
	bid.Exclusions = req.Exclusions
	bid.BidDescription = req.BidDescription
	bid.Notes = req.Notes

	bid.NumApartments = in.NumApartments
	bid.NumNonApartmentSystems = in.NumNonApartmentSystems
	bid.NumMiniSplits = in.NumMiniSplits
	bid.HasClubhouse = in.HasClubhouse
	bid.ClubhouseSystems = in.ClubhouseSystems
	bid.RoughInHours = in.RoughInHours
	bid.AHUInstallHours = in.AHUInstallHours
	bid.CondenserInstallHours = in.CondenserInstallHours
	bid.TrimOutHours = in.TrimOutHours
	bid.StartupHours = in.StartupHours
	bid.CrewSize = in.CrewSize
	bid.HoursPerDay = in.HoursPerDay
	bid.LaborRatePerHour = in.LaborRatePerHour
	bid.LaborCostPerUnit = in.LaborCostPerUnit
	bid.JobMileage = in.JobMileage
	bid.PerDiemRate = calc.PerDiemRate
	bid.MaterialCost = in.MaterialCost
	bid.InsuranceCost = in.InsuranceCost
	bid.PermitCost = in.PermitCost
	bid.ManagementFee = in.ManagementFee
	bid.CompanyProfitPct = in.CompanyProfitPct

	bid.TotalSystems = calc.TotalSystems
	bid.ManHoursPerSystem = calc.ManHoursPerSystem
	bid.TotalManHours = calc.TotalManHours
	bid.DurationDays = calc.DurationDays
	bid.NumWeeks = calc.NumWeeks
	bid.LaborCost = calc.LaborCost
	bid.PerDiemDays = calc.DurationDays
	bid.PerDiemTotal = calc.PerDiemTotal
	bid.Subtotal = calc.Subtotal
	bid.TotalCostToBuild = calc.TotalCostToBuild
	bid.CompanyProfit = calc.CompanyProfit
	bid.TotalBid = calc.TotalBid
	bid.NetProfit = calc.NetProfit
	bid.CostPerApartment = calc.CostPerApartment
	bid.CostPerSystem = calc.CostPerSystem
	bid.LaborCostPerApartment = calc.LaborCostPerApartment
	bid.LaborCostPerSystem = calc.LaborCostPerSystem
	bid.SuggestedApartmentBid = calc.SuggestedApartmentBid
	bid.SuggestedClubhouseBid = calc.SuggestedClubhouseBid
	return nil
}
