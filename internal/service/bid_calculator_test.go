package service_test

import (
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/stretchr/testify/assert"
)

func apartmentBid() domain.BidInputs {
	return domain.BidInputs{
		NumApartments:         40,
		RoughInHours:          15,
		AHUInstallHours:       1,
		CondenserInstallHours: 1,
		TrimOutHours:          1,
		StartupHours:          2,
		CrewSize:              4,
		HoursPerDay:           8,
		LaborRatePerHour:      37,
		CompanyProfitPct:      10,
		MaterialCost:          100000,
	}
}

func TestCalculateBid_Apartments(t *testing.T) {
	calc := service.CalculateBid(apartmentBid())

	assert.Equal(t, 40.0, calc.TotalSystems)
	assert.Equal(t, 20.0, calc.ManHoursPerSystem)
	assert.Equal(t, 800.0, calc.TotalManHours)
	assert.Equal(t, 25.0, calc.DurationDays)
	assert.Equal(t, 5.0, calc.NumWeeks)
	assert.Equal(t, 29600.0, calc.LaborCost)
	assert.Equal(t, 129600.0, calc.TotalCostToBuild)
	assert.Equal(t, 12960.0, calc.CompanyProfit)
	assert.Equal(t, 142560.0, calc.TotalBid)
	assert.Equal(t, 12960.0, calc.NetProfit)
	assert.Equal(t, 3240.0, calc.CostPerApartment)
	assert.Equal(t, 740.0, calc.LaborCostPerApartment)
	assert.Equal(t, 142560.0, calc.SuggestedApartmentBid)
	assert.Zero(t, calc.SuggestedClubhouseBid)
}

func TestCalculateBid_IsPure(t *testing.T) {
	in := apartmentBid()
	in.JobMileage = 180
	in.NumMiniSplits = 3
	assert.Equal(t, service.CalculateBid(in), service.CalculateBid(in))
}

func TestCalculateBid_Defaults(t *testing.T) {
	calc := service.CalculateBid(domain.BidInputs{NumApartments: 10})

	assert.Equal(t, 20.0, calc.ManHoursPerSystem)
	assert.Equal(t, 200.0, calc.TotalManHours)
	// 200 man-hours over a crew of 4 working 8 hour days
	assert.Equal(t, 6.25, calc.DurationDays)
}

func TestCalculateBid_MiniSplitsWeighted(t *testing.T) {
	calc := service.CalculateBid(domain.BidInputs{NumApartments: 2, NumMiniSplits: 4})
	assert.Equal(t, 5.0, calc.TotalSystems)
}

func TestCalculateBid_Clubhouse(t *testing.T) {
	calc := service.CalculateBid(domain.BidInputs{
		NumApartments:    10,
		HasClubhouse:     true,
		ClubhouseSystems: 2,
		MaterialCost:     12000,
	})

	assert.Equal(t, 12.0, calc.TotalSystems)
	assert.Equal(t, 12000.0, calc.TotalBid)
	assert.Equal(t, 10000.0, calc.SuggestedApartmentBid)
	assert.Equal(t, 2000.0, calc.SuggestedClubhouseBid)

	// clubhouse systems are ignored without a clubhouse
	calc = service.CalculateBid(domain.BidInputs{NumApartments: 10, ClubhouseSystems: 2})
	assert.Equal(t, 10.0, calc.TotalSystems)
	assert.Zero(t, calc.SuggestedClubhouseBid)
}

func TestCalculateBid_PerDiemTiers(t *testing.T) {
	tests := []struct {
		name    string
		mileage float64
		rate    float64
		want    float64
	}{
		{"local job", 100, 0, 0},
		{"near tier", 101, 0, 60},
		{"mid distance", 249, 0, 60},
		{"far tier", 250, 0, 75},
		{"explicit rate wins", 300, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := apartmentBid()
			in.JobMileage = tt.mileage
			in.PerDiemRate = tt.rate
			calc := service.CalculateBid(in)

			assert.Equal(t, tt.want, calc.PerDiemRate)
			// 25 days for a crew of 4
			assert.Equal(t, tt.want*25*4, calc.PerDiemTotal)
			assert.Equal(t, 129600+calc.PerDiemTotal, calc.TotalCostToBuild)
		})
	}
}

func TestCalculateBid_LaborCostPerUnit(t *testing.T) {
	in := apartmentBid()
	in.LaborCostPerUnit = 500
	calc := service.CalculateBid(in)

	assert.Equal(t, 20000.0, calc.LaborCost)
	assert.Equal(t, 500.0, calc.LaborCostPerSystem)
}

func TestCalculateBid_NoUnits(t *testing.T) {
	calc := service.CalculateBid(domain.BidInputs{MaterialCost: 500})

	assert.Zero(t, calc.TotalSystems)
	assert.Zero(t, calc.CostPerApartment)
	assert.Zero(t, calc.CostPerSystem)
	assert.Equal(t, 500.0, calc.TotalBid)
}
