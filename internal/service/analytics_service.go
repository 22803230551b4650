package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
)

func (s *LedgerService) isHomeState(state string) bool {
	state = strings.ToUpper(strings.TrimSpace(state))
	for _, home := range s.cfg.HomeStates {
		if strings.ToUpper(strings.TrimSpace(home)) == state {
			return true
		}
	}
	return false
}

// ShippingFor returns the flat out-of-state shipping charge for a job.
func (s *LedgerService) ShippingFor(job *domain.Job) float64 {
	if s.isHomeState(job.State) {
		return 0
	}
	return s.cfg.OutOfStateShipping
}

// CostBreakdown computes subtotal, tax, shipping and total for one job.
func (s *LedgerService) CostBreakdown(job *domain.Job, subtotal float64) domain.JobCostBreakdown {
	tax := domain.Round2(subtotal * job.TaxRate / 100)
	shipping := s.ShippingFor(job)
	location := strings.TrimSpace(job.City + " " + job.State)
	if location == "" {
		location = "—"
	}
	return domain.JobCostBreakdown{
		ID:       job.ID,
		Name:     job.Name,
		Location: location,
		Subtotal: domain.Round2(subtotal),
		Tax:      tax,
		Shipping: shipping,
		Total:    domain.Round2(subtotal + tax + shipping),
	}
}

// Analytics buckets every job by pipeline stage with material subtotals,
// tax and shipping. Jobs with an unknown status count as Needs Bid.
func (s *LedgerService) Analytics(ctx context.Context, jobs []domain.Job) (*domain.Analytics, error) {
	nets, err := s.materials.NetTotalsByJob(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total line items: %w", err)
	}

	out := &domain.Analytics{
		Stages:     make(map[string]*domain.StageAnalytics, len(domain.JobStages)),
		StageOrder: domain.JobStages,
	}
	for _, stage := range domain.JobStages {
		out.Stages[stage] = &domain.StageAnalytics{Jobs: []domain.JobCostBreakdown{}}
	}

	var grandSubtotal, grandTax, grandShipping float64
	for i := range jobs {
		job := &jobs[i]
		stage := job.Status
		if !domain.IsJobStage(stage) {
			stage = domain.JobStatusNeedsBid
		}
		subtotal := nets[job.ID]
		b := s.CostBreakdown(job, subtotal)

		bucket := out.Stages[stage]
		bucket.Count++
		bucket.Jobs = append(bucket.Jobs, b)
		bucket.Subtotal += subtotal
		bucket.Tax += b.Tax
		bucket.Shipping += b.Shipping
		bucket.Total += b.Total

		grandSubtotal += subtotal
		grandTax += b.Tax
		grandShipping += b.Shipping
	}

	for _, bucket := range out.Stages {
		bucket.Subtotal = domain.Round2(bucket.Subtotal)
		bucket.Tax = domain.Round2(bucket.Tax)
		bucket.Shipping = domain.Round2(bucket.Shipping)
		bucket.Total = domain.Round2(bucket.Total)
	}
	out.GrandSubtotal = domain.Round2(grandSubtotal)
	out.GrandTax = domain.Round2(grandTax)
	out.GrandShipping = domain.Round2(grandShipping)
	out.GrandTotal = domain.Round2(grandSubtotal + grandTax + grandShipping)
	return out, nil
}
