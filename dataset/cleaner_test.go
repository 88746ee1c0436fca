package dataset

import (
	"testing"

	"github.com/rushteam/matchkit/core"
)

func TestCleaner_Clean(t *testing.T) {
	raw := []core.Service{
		{ID: "SRV_001", Name: "web design", BusinessType: "technology", PriceCategory: "low",
			LanguageSupport: "both", LocationArea: "Mumbai", Description: "Great service"},
		{ID: "SRV_002", Name: "  APP Development  ", BusinessType: "Technology", PriceCategory: "HIGH",
			LanguageSupport: "English", LocationArea: "  Delhi  ", Description: "Excellent work here"},
		// 重复 ID，应只保留首条
		{ID: "SRV_002", Name: "Mobile Dev", BusinessType: "Tech", PriceCategory: "medium",
			LanguageSupport: "hindi", LocationArea: "Remote", Description: "Top quality"},
		// 缺 ID 缺名称，描述过短
		{BusinessType: "retail", PriceCategory: "expensive",
			LanguageSupport: "bilingual", LocationArea: "online", Description: "A"},
	}

	out, report := NewCleaner().Clean(raw)

	if len(out) != 2 {
		t.Fatalf("Clean() kept %d records, want 2", len(out))
	}
	if out[0].ID != "SRV_001" || out[1].ID != "SRV_002" {
		t.Errorf("kept IDs [%s %s], want [SRV_001 SRV_002]", out[0].ID, out[1].ID)
	}

	if report.OriginalRecords != 4 || report.FinalRecords != 2 || report.RecordsRemoved != 2 {
		t.Errorf("report counts = %+v", report)
	}
	if report.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", report.DuplicatesRemoved)
	}
	if report.InvalidRecordsRemoved != 1 {
		t.Errorf("InvalidRecordsRemoved = %d, want 1", report.InvalidRecordsRemoved)
	}
	// 第 4 条的 ID 与名称被填充（之后才因描述过短被剔除）
	if report.MissingValuesFilled != 2 {
		t.Errorf("MissingValuesFilled = %d, want 2", report.MissingValuesFilled)
	}

	first := out[0]
	if first.Name != "Web Design" {
		t.Errorf("name not title-cased: %q", first.Name)
	}
	if first.BusinessType != "Technology" || first.PriceCategory != "Low" || first.LanguageSupport != "Both" {
		t.Errorf("categories not standardized: %+v", first)
	}

	second := out[1]
	if second.Name != "App Development" {
		t.Errorf("name not cleaned: %q", second.Name)
	}
	if second.PriceCategory != "High" || second.LocationArea != "Delhi" {
		t.Errorf("categories not standardized: %+v", second)
	}
}

func TestCleaner_ModeFill(t *testing.T) {
	raw := []core.Service{
		{ID: "A", Name: "Alpha", BusinessType: "Technology", PriceCategory: "Low",
			LanguageSupport: "Both", LocationArea: "Mumbai", Description: "Long enough description"},
		{ID: "B", Name: "Beta", BusinessType: "Technology", PriceCategory: "Low",
			LanguageSupport: "Both", LocationArea: "Mumbai", Description: "Another long description"},
		{ID: "C", Name: "Gamma", BusinessType: "", PriceCategory: "",
			LanguageSupport: "Hindi", LocationArea: "Delhi", Description: "Third long description"},
	}

	out, report := NewCleaner().Clean(raw)
	if len(out) != 3 {
		t.Fatalf("Clean() kept %d records, want 3", len(out))
	}
	if out[2].BusinessType != "Technology" {
		t.Errorf("business type filled with %q, want column mode Technology", out[2].BusinessType)
	}
	if out[2].PriceCategory != "Low" {
		t.Errorf("price filled with %q, want column mode Low", out[2].PriceCategory)
	}
	if report.MissingValuesFilled != 2 {
		t.Errorf("MissingValuesFilled = %d, want 2", report.MissingValuesFilled)
	}
}

func TestCleaner_UnknownFallbackAndDescriptionFill(t *testing.T) {
	raw := []core.Service{
		{ID: "A", Name: "Alpha", PriceCategory: "Low",
			LanguageSupport: "Both", Description: ""},
	}

	out, _ := NewCleaner().Clean(raw)
	if len(out) != 1 {
		t.Fatalf("Clean() kept %d records, want 1", len(out))
	}
	if out[0].BusinessType != "Unknown" || out[0].LocationArea != "Unknown" {
		t.Errorf("empty columns should fall back to Unknown: %+v", out[0])
	}
	if out[0].Description != FillDescription {
		t.Errorf("description = %q, want fill text", out[0].Description)
	}
}

func TestCleaner_DropsInvalidLanguage(t *testing.T) {
	raw := []core.Service{
		{ID: "A", Name: "Alpha", BusinessType: "Technology", PriceCategory: "Low",
			LanguageSupport: "French", LocationArea: "Mumbai", Description: "Long enough description"},
	}

	out, report := NewCleaner().Clean(raw)
	if len(out) != 0 {
		t.Fatalf("Clean() kept %d records, want 0", len(out))
	}
	if report.InvalidRecordsRemoved != 1 {
		t.Errorf("InvalidRecordsRemoved = %d, want 1", report.InvalidRecordsRemoved)
	}
}
