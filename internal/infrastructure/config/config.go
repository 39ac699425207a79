// Package config loads the shop's commercial parameters from the
// environment. Rates are injected into the use cases so nothing monetary is
// hard-coded.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Shop carries every tunable the document engines need.
//
// Env vars (all optional, defaults in parentheses):
//   - LABOUR_RATE (95.0)            hourly labour rate billed to customers
//   - TAX_RATE (13.0)               percent applied to pre-tax totals
//   - INVOICE_DUE_DAYS (30)         payment terms for generated invoices
//   - PARTS_MARKUP_FACTOR (1.4)     unit_price = unit_cost * factor
//   - ESTIMATE_VALID_DAYS (30)      estimate validity window
//   - BUSINESS_HOURS_START (08:00)  first bookable tick
//   - BUSINESS_HOURS_END (18:00)    end of the booking window (exclusive)
//   - SLOT_GRANULARITY_MINUTES (30) tick size of the booking grid
type Shop struct {
	LabourRate             float64
	TaxRate                float64
	InvoiceDueDays         int
	PartsMarkupFactor      float64
	EstimateValidDays      int
	BusinessHoursStart     string
	BusinessHoursEnd       string
	SlotGranularityMinutes int
}

func FromEnv() (Shop, error) {
	cfg := Shop{
		LabourRate:             95.0,
		TaxRate:                13.0,
		InvoiceDueDays:         30,
		PartsMarkupFactor:      1.4,
		EstimateValidDays:      30,
		BusinessHoursStart:     "08:00",
		BusinessHoursEnd:       "18:00",
		SlotGranularityMinutes: 30,
	}

	var err error
	if cfg.LabourRate, err = envFloat("LABOUR_RATE", cfg.LabourRate); err != nil {
		return Shop{}, err
	}
	if cfg.TaxRate, err = envFloat("TAX_RATE", cfg.TaxRate); err != nil {
		return Shop{}, err
	}
	if cfg.InvoiceDueDays, err = envInt("INVOICE_DUE_DAYS", cfg.InvoiceDueDays); err != nil {
		return Shop{}, err
	}
	if cfg.PartsMarkupFactor, err = envFloat("PARTS_MARKUP_FACTOR", cfg.PartsMarkupFactor); err != nil {
		return Shop{}, err
	}
	if cfg.EstimateValidDays, err = envInt("ESTIMATE_VALID_DAYS", cfg.EstimateValidDays); err != nil {
		return Shop{}, err
	}
	if v := os.Getenv("BUSINESS_HOURS_START"); v != "" {
		cfg.BusinessHoursStart = v
	}
	if v := os.Getenv("BUSINESS_HOURS_END"); v != "" {
		cfg.BusinessHoursEnd = v
	}
	if cfg.SlotGranularityMinutes, err = envInt("SLOT_GRANULARITY_MINUTES", cfg.SlotGranularityMinutes); err != nil {
		return Shop{}, err
	}

	if _, err := time.Parse("15:04", cfg.BusinessHoursStart); err != nil {
		return Shop{}, fmt.Errorf("invalid BUSINESS_HOURS_START %q: %w", cfg.BusinessHoursStart, err)
	}
	if _, err := time.Parse("15:04", cfg.BusinessHoursEnd); err != nil {
		return Shop{}, fmt.Errorf("invalid BUSINESS_HOURS_END %q: %w", cfg.BusinessHoursEnd, err)
	}
	if cfg.SlotGranularityMinutes <= 0 {
		return Shop{}, fmt.Errorf("SLOT_GRANULARITY_MINUTES must be positive, got %d", cfg.SlotGranularityMinutes)
	}
	if cfg.PartsMarkupFactor <= 0 {
		return Shop{}, fmt.Errorf("PARTS_MARKUP_FACTOR must be positive, got %v", cfg.PartsMarkupFactor)
	}
	return cfg, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
