package drug

import (
	"errors"
	"strings"
	"testing"

	"paramedai/internal/genui"
)

func agep(v float64) *float64 { return &v }

func TestCalculate_FixedAdultDose(t *testing.T) {
	res, err := Calculate(Request{Drug: "aspirin", WeightKg: 80, Indication: "acs"})
	if err != nil {
		t.Fatal(err)
	}
	if res.DrugName != "Acetylsalicylic Acid (Aspirin)" {
		t.Fatalf("name = %s", res.DrugName)
	}
	if res.CalculatedDose != "300 mg (fixed dose)" {
		t.Fatalf("calculated = %q", res.CalculatedDose)
	}
	if res.Widget.Type != genui.WidgetDrugDoseCard {
		t.Fatalf("widget type = %s", res.Widget.Type)
	}
	if res.Widget.Data["calculatedDose"] != res.CalculatedDose {
		t.Fatalf("widget data mismatch: %v", res.Widget.Data)
	}
}

func TestCalculate_PerKgPediatric(t *testing.T) {
	res, err := Calculate(Request{Drug: "adrenalin", WeightKg: 20, Indication: "anaphylaxis", Pediatric: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CalculatedDose != "0.20 mg (0.01 mg/kg x 20 kg)" {
		t.Fatalf("calculated = %q", res.CalculatedDose)
	}
	if res.PediatricNote != "Pediatric dose (20 kg)" {
		t.Fatalf("note = %q", res.PediatricNote)
	}
}

func TestCalculate_PerKgCappedAtMax(t *testing.T) {
	// 0.01 mg/kg x 70 kg = 0.7 mg exceeds the 0.5 mg pediatric cap.
	res, err := Calculate(Request{Drug: "adrenalin", WeightKg: 70, Indication: "anaphylaxis", Pediatric: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.CalculatedDose, "0.5 mg (max dose") {
		t.Fatalf("calculated = %q", res.CalculatedDose)
	}
	if !strings.Contains(res.CalculatedDose, "0.70 mg") {
		t.Fatalf("raw calculation missing: %q", res.CalculatedDose)
	}
}

func TestCalculate_AgeAutoDetectsPediatric(t *testing.T) {
	res, err := Calculate(Request{Drug: "morphine", WeightKg: 30, Indication: "pain", AgeYears: agep(10)})
	if err != nil {
		t.Fatal(err)
	}
	if res.CalculatedDose != "3.00 mg (0.1 mg/kg x 30 kg)" {
		t.Fatalf("calculated = %q", res.CalculatedDose)
	}
	if res.PediatricNote == "" {
		t.Fatal("expected pediatric note for age 10")
	}
}

func TestCalculate_SalbutamolPediatricByAge(t *testing.T) {
	res, err := Calculate(Request{Drug: "salbutamol", WeightKg: 25, AgeYears: agep(7)})
	if err != nil {
		t.Fatal(err)
	}
	if res.CalculatedDose != "5 mg nebulized (>5 years)" {
		t.Fatalf("calculated = %q", res.CalculatedDose)
	}

	res, err = Calculate(Request{Drug: "salbutamol", WeightKg: 14, AgeYears: agep(3)})
	if err != nil {
		t.Fatal(err)
	}
	if res.CalculatedDose != "2.5 mg nebulized (<5 years)" {
		t.Fatalf("calculated = %q", res.CalculatedDose)
	}
}

func TestCalculate_BicarbonateUsesMEq(t *testing.T) {
	res, err := Calculate(Request{Drug: "sodium_bicarbonate", WeightKg: 80, Indication: "acidosis"})
	if err != nil {
		t.Fatal(err)
	}
	if res.CalculatedDose != "50 mEq (fixed dose)" {
		t.Fatalf("calculated = %q", res.CalculatedDose)
	}
}

func TestCalculate_DefaultIndication(t *testing.T) {
	res, err := Calculate(Request{Drug: "adrenalin", WeightKg: 70})
	if err != nil {
		t.Fatal(err)
	}
	if res.Indication != "anaphylaxis" {
		t.Fatalf("default indication = %s, want first declared", res.Indication)
	}
}

func TestCalculate_PregnancyWarningAppended(t *testing.T) {
	res, err := Calculate(Request{Drug: "magnesium_sulfate", WeightKg: 65, Indication: "eclampsia", Pregnant: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Warning, "PREGNANCY: First choice for eclamptic seizures") {
		t.Fatalf("warning = %q", res.Warning)
	}
}

func TestCalculate_UnknownDrug(t *testing.T) {
	_, err := Calculate(Request{Drug: "unobtainium", WeightKg: 70})
	var lerr *LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("err = %v", err)
	}
	if lerr.Widget.Type != genui.WidgetWarningCard {
		t.Fatalf("widget type = %s", lerr.Widget.Type)
	}
	if len(lerr.Available) != len(Available()) {
		t.Fatalf("available = %v", lerr.Available)
	}
}

func TestCalculate_UnknownIndication(t *testing.T) {
	_, err := Calculate(Request{Drug: "aspirin", WeightKg: 70, Indication: "headache"})
	var lerr *LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("err = %v", err)
	}
	if lerr.Available[0] != "acs" {
		t.Fatalf("available = %v", lerr.Available)
	}
}

func TestCalculate_NameNormalization(t *testing.T) {
	res, err := Calculate(Request{Drug: " Calcium-Gluconate ", WeightKg: 70, Indication: "hyperkalemia"})
	if err != nil {
		t.Fatal(err)
	}
	if res.DrugName != "Calcium Gluconate 10%" {
		t.Fatalf("name = %s", res.DrugName)
	}
}

func TestAvailable(t *testing.T) {
	drugs := Available()
	if len(drugs) != 15 {
		t.Fatalf("len = %d, want 15", len(drugs))
	}
	if drugs[0] != "adrenalin" {
		t.Fatalf("order not preserved: %v", drugs)
	}
	if inds := Indications("adrenalin"); len(inds) != 2 || inds[0] != "anaphylaxis" {
		t.Fatalf("indications = %v", inds)
	}
	if Indications("nope") != nil {
		t.Fatal("unknown drug should yield nil")
	}
}
