package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LabourRate != 95.0 || cfg.TaxRate != 13.0 {
		t.Fatalf("unexpected rates: %+v", cfg)
	}
	if cfg.BusinessHoursStart != "08:00" || cfg.BusinessHoursEnd != "18:00" {
		t.Fatalf("unexpected business hours: %+v", cfg)
	}
	if cfg.SlotGranularityMinutes != 30 || cfg.InvoiceDueDays != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnvOverridesAndValidation(t *testing.T) {
	t.Setenv("LABOUR_RATE", "80")
	t.Setenv("SLOT_GRANULARITY_MINUTES", "15")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LabourRate != 80 || cfg.SlotGranularityMinutes != 15 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	t.Setenv("BUSINESS_HOURS_START", "not-a-time")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for malformed business hours")
	}
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("TAX_RATE", "thirteen")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for malformed tax rate")
	}
}
