package service

import "github.com/jwilson7981/job-tracker-sub000/internal/domain"

// Bid calculator defaults, applied when an input is zero.
const (
	DefaultRoughInHours          = 15
	DefaultAHUInstallHours       = 1
	DefaultCondenserInstallHours = 1
	DefaultTrimOutHours          = 1
	DefaultStartupHours          = 2
	DefaultCrewSize              = 4
	DefaultHoursPerDay           = 8

	miniSplitWeight = 0.75
	workDaysPerWeek = 5
)

// Per diem rates picked from job mileage when no rate is given.
const (
	perDiemNearMiles = 101
	perDiemFarMiles  = 250
	perDiemNearRate  = 60
	perDiemFarRate   = 75
)

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// ApplyBidDefaults returns in with zero hour, crew and day inputs replaced
// by their defaults. Clubhouse systems are dropped without a clubhouse.
func ApplyBidDefaults(in domain.BidInputs) domain.BidInputs {
	in.RoughInHours = orDefault(in.RoughInHours, DefaultRoughInHours)
	in.AHUInstallHours = orDefault(in.AHUInstallHours, DefaultAHUInstallHours)
	in.CondenserInstallHours = orDefault(in.CondenserInstallHours, DefaultCondenserInstallHours)
	in.TrimOutHours = orDefault(in.TrimOutHours, DefaultTrimOutHours)
	in.StartupHours = orDefault(in.StartupHours, DefaultStartupHours)
	in.HoursPerDay = orDefault(in.HoursPerDay, DefaultHoursPerDay)
	if in.CrewSize == 0 {
		in.CrewSize = DefaultCrewSize
	}
	if !in.HasClubhouse {
		in.ClubhouseSystems = 0
	}
	return in
}

// perDiemRate returns the given rate, or one derived from the job mileage
// when the rate is zero.
func perDiemRate(rate, mileage float64) float64 {
	if rate != 0 {
		return rate
	}
	switch {
	case mileage >= perDiemFarMiles:
		return perDiemFarRate
	case mileage >= perDiemNearMiles:
		return perDiemNearRate
	}
	return 0
}

func perUnit(amount, units float64) float64 {
	if units <= 0 {
		return 0
	}
	return domain.Round2(amount / units)
}

// CalculateBid derives every bid total from the inputs. It has no side
// effects: equal inputs give equal outputs.
func CalculateBid(raw domain.BidInputs) domain.BidCalculation {
	in := ApplyBidDefaults(raw)
	round := domain.Round2

	totalSystems := float64(in.NumApartments) +
		float64(in.NumNonApartmentSystems) +
		float64(in.NumMiniSplits)*miniSplitWeight +
		float64(in.ClubhouseSystems)

	manHoursPerSystem := in.RoughInHours + in.AHUInstallHours + in.CondenserInstallHours +
		in.TrimOutHours + in.StartupHours
	totalManHours := totalSystems * manHoursPerSystem

	var laborCost float64
	if in.LaborCostPerUnit > 0 {
		laborCost = round(totalSystems * in.LaborCostPerUnit)
	} else {
		laborCost = round(totalManHours * in.LaborRatePerHour)
	}

	var durationDays float64
	if in.CrewSize > 0 && in.HoursPerDay > 0 {
		durationDays = round(totalManHours / (float64(in.CrewSize) * in.HoursPerDay))
	}
	numWeeks := round(durationDays / workDaysPerWeek)

	rate := perDiemRate(in.PerDiemRate, in.JobMileage)
	perDiemTotal := round(rate * durationDays * float64(in.CrewSize))

	totalCost := round(in.MaterialCost + laborCost + in.InsuranceCost + in.PermitCost +
		in.ManagementFee + perDiemTotal)
	companyProfit := round(totalCost * in.CompanyProfitPct / 100)
	totalBid := round(totalCost + companyProfit)

	calc := domain.BidCalculation{
		TotalSystems:          totalSystems,
		ManHoursPerSystem:     manHoursPerSystem,
		TotalManHours:         totalManHours,
		DurationDays:          durationDays,
		NumWeeks:              numWeeks,
		LaborCost:             laborCost,
		PerDiemRate:           rate,
		PerDiemTotal:          perDiemTotal,
		TotalCostToBuild:      totalCost,
		Subtotal:              totalCost,
		CompanyProfit:         companyProfit,
		TotalBid:              totalBid,
		NetProfit:             round(totalBid - totalCost),
		CostPerApartment:      perUnit(totalCost, float64(in.NumApartments)),
		CostPerSystem:         perUnit(totalCost, totalSystems),
		LaborCostPerApartment: perUnit(laborCost, float64(in.NumApartments)),
		LaborCostPerSystem:    perUnit(laborCost, totalSystems),
		SuggestedApartmentBid: totalBid,
	}

	if in.HasClubhouse && in.ClubhouseSystems > 0 && totalSystems > 0 {
		share := (totalSystems - float64(in.ClubhouseSystems)) / totalSystems
		calc.SuggestedApartmentBid = round(totalBid * share)
		calc.SuggestedClubhouseBid = round(totalBid * (1 - share))
	}
	return calc
}
