// Package drug implements deterministic emergency drug dose calculation.
// Doses come from a hard-coded evidence-based table (ERC/ILCOR/AHA) and
// are never produced by a language model.
package drug

// Dosing holds one indication-and-population dosing entry. Zero values
// for DosePerKg, FixedDoseMg and MaxDoseMg mean "not specified".
type Dosing struct {
	Dose          string
	DosePerKg     float64
	FixedDoseMg   float64
	Route         string
	Concentration string
	Frequency     string
	MaxDose       string
	MaxDoseMg     float64
	Volume        string
	Warning       string
}

// Indication pairs adult and pediatric dosing for one clinical use.
type Indication struct {
	Key       string
	Adult     Dosing
	Pediatric Dosing
}

// Drug is one database entry. Indications keep their declaration order;
// the first one is the default when a request names none.
type Drug struct {
	Key         string
	GenericName string
	Indications []Indication
}

var emergencyDrugs = []Drug{
	{
		Key:         "adrenalin",
		GenericName: "Epinephrine (Adrenaline)",
		Indications: []Indication{
			{
				Key: "anaphylaxis",
				Adult: Dosing{
					Dose:          "0.5 mg IM",
					FixedDoseMg:   0.5,
					Route:         "IM (anterolateral thigh)",
					Concentration: "1:1000 (1 mg/mL)",
					Frequency:     "Every 5 minutes if no improvement",
					MaxDose:       "No max (repeat every 5 min as needed)",
					Volume:        "0.5 mL of 1:1000",
					Warning:       "IM only in prehospital. IV only by experienced physicians.",
				},
				Pediatric: Dosing{
					Dose:          "0.01 mg/kg IM",
					DosePerKg:     0.01,
					Route:         "IM (anterolateral thigh)",
					Concentration: "1:1000 (1 mg/mL)",
					Frequency:     "Every 5 minutes if no improvement",
					MaxDose:       "0.5 mg per dose",
					MaxDoseMg:     0.5,
					Warning:       "Max 0.3 mg for <6 years, 0.5 mg for >6 years. IM only.",
				},
			},
			{
				Key: "cardiac_arrest",
				Adult: Dosing{
					Dose:          "1 mg IV/IO",
					FixedDoseMg:   1.0,
					Route:         "IV/IO",
					Concentration: "1:10,000 (0.1 mg/mL)",
					Frequency:     "Every 3-5 minutes",
					MaxDose:       "No max during resuscitation",
					Volume:        "10 mL of 1:10,000",
					Warning:       "Shockable rhythm: give after 3rd shock. Non-shockable: give immediately.",
				},
				Pediatric: Dosing{
					Dose:          "0.01 mg/kg IV/IO",
					DosePerKg:     0.01,
					Route:         "IV/IO",
					Concentration: "1:10,000 (0.1 mg/mL)",
					Frequency:     "Every 3-5 minutes",
					MaxDose:       "1 mg per dose",
					MaxDoseMg:     1.0,
					Warning:       "0.1 mL/kg of 1:10,000 solution. Use 1:10,000 for IV, never 1:1000 IV in children.",
				},
			},
		},
	},
	{
		Key:         "amiodaron",
		GenericName: "Amiodarone",
		Indications: []Indication{
			{
				Key: "vf_vt",
				Adult: Dosing{
					Dose:          "300 mg IV bolus (first dose), 150 mg IV (second dose)",
					FixedDoseMg:   300,
					Route:         "IV/IO bolus",
					Concentration: "50 mg/mL",
					Frequency:     "First dose after 3rd shock, second dose after 5th shock",
					MaxDose:       "450 mg total during arrest",
					Volume:        "6 mL (300 mg) diluted in 20 mL D5W",
					Warning:       "Give after 3rd defibrillation. Can cause hypotension.",
				},
				Pediatric: Dosing{
					Dose:          "5 mg/kg IV/IO",
					DosePerKg:     5.0,
					Route:         "IV/IO",
					Concentration: "50 mg/mL",
					Frequency:     "After 3rd shock, can repeat twice to max 15 mg/kg",
					MaxDose:       "300 mg per dose",
					MaxDoseMg:     300,
					Warning:       "Max 15 mg/kg total. Dilute in D5W.",
				},
			},
		},
	},
	{
		Key:         "midazolam",
		GenericName: "Midazolam",
		Indications: []Indication{
			{
				Key: "seizure",
				Adult: Dosing{
					Dose:          "10 mg IM/buccal or 5 mg IV",
					FixedDoseMg:   10,
					Route:         "IM/Buccal (preferred prehospital) or IV",
					Concentration: "5 mg/mL",
					Frequency:     "Can repeat ONCE after 10 minutes",
					MaxDose:       "20 mg total",
					Volume:        "2 mL IM or 1 mL IV",
					Warning:       "Monitor respiratory depression. Have bag-valve-mask ready.",
				},
				Pediatric: Dosing{
					Dose:          "0.3 mg/kg buccal or 0.1 mg/kg IV",
					DosePerKg:     0.3,
					Route:         "Buccal (preferred) or IV",
					Concentration: "5 mg/mL",
					Frequency:     "Can repeat ONCE after 10 minutes",
					MaxDose:       "10 mg per dose",
					MaxDoseMg:     10,
					Warning:       "Buccal route preferred in prehospital. Monitor airway closely.",
				},
			},
		},
	},
	{
		Key:         "atropine",
		GenericName: "Atropine Sulfate",
		Indications: []Indication{
			{
				Key: "bradycardia",
				Adult: Dosing{
					Dose:          "0.5 mg IV",
					FixedDoseMg:   0.5,
					Route:         "IV",
					Concentration: "0.5 mg/mL or 1 mg/mL",
					Frequency:     "Every 3-5 minutes",
					MaxDose:       "3 mg total",
					Volume:        "1 mL of 0.5 mg/mL",
					Warning:       "Do not give less than 0.5 mg (may cause paradoxical bradycardia).",
				},
				Pediatric: Dosing{
					Dose:          "0.02 mg/kg IV",
					DosePerKg:     0.02,
					Route:         "IV/IO",
					Concentration: "0.5 mg/mL",
					Frequency:     "May repeat once",
					MaxDose:       "0.5 mg per dose (child), 1 mg (adolescent)",
					MaxDoseMg:     0.5,
					Warning:       "Minimum dose 0.1 mg. May cause paradoxical bradycardia if underdosed.",
				},
			},
		},
	},
	{
		Key:         "morphine",
		GenericName: "Morphine Sulfate",
		Indications: []Indication{
			{
				Key: "pain",
				Adult: Dosing{
					Dose:          "2-5 mg IV titrated",
					FixedDoseMg:   5,
					Route:         "IV (slow push over 5 min)",
					Concentration: "10 mg/mL",
					Frequency:     "Every 5-15 minutes, titrate to pain relief",
					MaxDose:       "20 mg total prehospital",
					Volume:        "0.5 mL (5 mg) diluted",
					Warning:       "Monitor RR and SpO2. Have naloxone ready. Contraindicated in hypotension (SBP<90).",
				},
				Pediatric: Dosing{
					Dose:          "0.1 mg/kg IV",
					DosePerKg:     0.1,
					Route:         "IV (slow push)",
					Concentration: "10 mg/mL (dilute to 1 mg/mL for peds)",
					Frequency:     "Every 5-15 minutes",
					MaxDose:       "5 mg per dose",
					MaxDoseMg:     5,
					Warning:       "Dilute to 1 mg/mL. Monitor respiratory depression closely. Have naloxone ready.",
				},
			},
		},
	},
	{
		Key:         "salbutamol",
		GenericName: "Salbutamol (Albuterol)",
		Indications: []Indication{
			{
				Key: "asthma",
				Adult: Dosing{
					Dose:          "5 mg nebulized",
					FixedDoseMg:   5,
					Route:         "Nebulized (with O2 6-8 L/min)",
					Concentration: "5 mg/2.5 mL nebule",
					Frequency:     "Every 20 minutes, or continuous if severe",
					MaxDose:       "No max in acute severe asthma",
					Volume:        "2.5 mL nebule",
					Warning:       "Can cause tachycardia, tremor. Back-to-back nebs for severe asthma.",
				},
				Pediatric: Dosing{
					Dose:          "2.5 mg nebulized (<5y) or 5 mg nebulized (>5y)",
					FixedDoseMg:   2.5,
					Route:         "Nebulized",
					Concentration: "2.5 mg/2.5 mL or 5 mg/2.5 mL nebule",
					Frequency:     "Every 20 minutes",
					MaxDose:       "No max in acute severe",
					Warning:       "Use 2.5 mg for <5 years, 5 mg for >5 years. Monitor HR.",
				},
			},
		},
	},
	{
		Key:         "sodium_bicarbonate",
		GenericName: "Sodium Bicarbonate",
		Indications: []Indication{
			{
				Key: "acidosis",
				Adult: Dosing{
					Dose:          "50 mEq (50 mL of 8.4%) IV",
					FixedDoseMg:   50,
					Route:         "IV slow push",
					Concentration: "8.4% (1 mEq/mL)",
					Frequency:     "Repeat based on ABG/clinical status",
					MaxDose:       "Guided by ABG",
					Volume:        "50 mL of 8.4%",
					Warning:       "Do not mix with calcium. Ensure adequate ventilation first.",
				},
				Pediatric: Dosing{
					Dose:          "1 mEq/kg IV",
					DosePerKg:     1.0,
					Route:         "IV slow push",
					Concentration: "4.2% for neonates (0.5 mEq/mL), 8.4% for children",
					Frequency:     "Repeat based on clinical status",
					MaxDose:       "50 mEq per dose",
					MaxDoseMg:     50,
					Warning:       "Use 4.2% solution for neonates. Do not mix with calcium.",
				},
			},
			{
				Key: "crush_syndrome",
				Adult: Dosing{
					Dose:          "50 mEq in first liter NS",
					FixedDoseMg:   50,
					Route:         "IV (mixed in NS)",
					Concentration: "8.4% (1 mEq/mL)",
					Frequency:     "With each liter of fluid until urine pH > 6.5",
					MaxDose:       "Guided by urine pH",
					Volume:        "50 mL added to 1L NS",
					Warning:       "Start BEFORE extrication. Target urine pH > 6.5. Monitor for alkalosis.",
				},
				Pediatric: Dosing{
					Dose:          "1 mEq/kg in NS",
					DosePerKg:     1.0,
					Route:         "IV (mixed in NS)",
					Concentration: "4.2% or 8.4%",
					Frequency:     "With fluid resuscitation",
					MaxDose:       "50 mEq per dose",
					MaxDoseMg:     50,
					Warning:       "Start before extrication. Use 4.2% for young children.",
				},
			},
		},
	},
	{
		Key:         "calcium_gluconate",
		GenericName: "Calcium Gluconate 10%",
		Indications: []Indication{
			{
				Key: "hyperkalemia",
				Adult: Dosing{
					Dose:          "10 mL of 10% IV over 10 min",
					FixedDoseMg:   1000,
					Route:         "IV slow push (over 10 minutes)",
					Concentration: "10% (100 mg/mL)",
					Frequency:     "May repeat in 5-10 minutes if ECG changes persist",
					MaxDose:       "30 mL (3g) total",
					Volume:        "10 mL",
					Warning:       "Cardioprotective, does NOT lower potassium. Monitor ECG. Do not mix with bicarbonate.",
				},
				Pediatric: Dosing{
					Dose:          "0.5 mL/kg of 10% IV over 10 min",
					DosePerKg:     50,
					Route:         "IV slow push (over 10 minutes)",
					Concentration: "10% (100 mg/mL)",
					Frequency:     "May repeat once",
					MaxDose:       "10 mL (1g) per dose",
					MaxDoseMg:     1000,
					Warning:       "Give slowly. Monitor for bradycardia. Do not mix with bicarbonate.",
				},
			},
			{
				Key: "crush_syndrome",
				Adult: Dosing{
					Dose:          "10 mL of 10% IV over 10 min",
					FixedDoseMg:   1000,
					Route:         "IV slow push",
					Concentration: "10% (100 mg/mL)",
					Frequency:     "Repeat if peaked T waves on ECG",
					MaxDose:       "30 mL (3g)",
					Volume:        "10 mL",
					Warning:       "Give BEFORE extrication for cardioprotection. Monitor ECG for peaked T waves.",
				},
				Pediatric: Dosing{
					Dose:          "0.5 mL/kg of 10% IV",
					DosePerKg:     50,
					Route:         "IV slow push",
					Concentration: "10%",
					Frequency:     "Repeat if ECG changes",
					MaxDose:       "10 mL per dose",
					MaxDoseMg:     1000,
					Warning:       "Give before extrication. Monitor ECG.",
				},
			},
		},
	},
	{
		Key:         "aspirin",
		GenericName: "Acetylsalicylic Acid (Aspirin)",
		Indications: []Indication{
			{
				Key: "acs",
				Adult: Dosing{
					Dose:          "300 mg PO (chew)",
					FixedDoseMg:   300,
					Route:         "PO (chew and swallow)",
					Concentration: "300 mg tablet",
					Frequency:     "Single dose",
					MaxDose:       "300 mg",
					Volume:        "1 tablet",
					Warning:       "Chew for faster absorption. Contraindicated if aspirin allergy or active GI bleeding.",
				},
				Pediatric: Dosing{
					Dose:          "Not typically used in pediatric ACS prehospital",
					Route:         "N/A",
					Concentration: "N/A",
					Frequency:     "N/A",
					MaxDose:       "N/A",
					Warning:       "NOT recommended for pediatric patients (Reye syndrome risk). Consult medical control.",
				},
			},
		},
	},
	{
		Key:         "nitroglycerin",
		GenericName: "Nitroglycerin (GTN)",
		Indications: []Indication{
			{
				Key: "chest_pain",
				Adult: Dosing{
					Dose:          "0.4 mg SL",
					FixedDoseMg:   0.4,
					Route:         "Sublingual spray or tablet",
					Concentration: "0.4 mg/dose spray",
					Frequency:     "Every 5 minutes, up to 3 doses",
					MaxDose:       "1.2 mg (3 doses)",
					Volume:        "1 spray or 1 tablet",
					Warning:       "Contraindicated if SBP < 90, RV infarct, or phosphodiesterase inhibitors (sildenafil) in last 24-48h.",
				},
				Pediatric: Dosing{
					Dose:          "Not typically used in pediatric prehospital",
					Route:         "N/A",
					Concentration: "N/A",
					Frequency:     "N/A",
					MaxDose:       "N/A",
					Warning:       "NOT routinely used in pediatric prehospital. Consult medical control.",
				},
			},
		},
	},
	{
		Key:         "magnesium_sulfate",
		GenericName: "Magnesium Sulfate",
		Indications: []Indication{
			{
				Key: "eclampsia",
				Adult: Dosing{
					Dose:          "4 g IV loading over 15-20 min, then 1 g/hour infusion",
					FixedDoseMg:   4000,
					Route:         "IV infusion",
					Concentration: "50% (500 mg/mL) diluted in 100 mL NS",
					Frequency:     "Loading dose, then continuous infusion",
					MaxDose:       "Loading: 4g. Maintenance: 1g/hr",
					Volume:        "8 mL of 50% in 100 mL NS",
					Warning:       "Monitor RR (stop if <12), DTR, urine output. Antidote: Calcium gluconate 1g IV.",
				},
				Pediatric: Dosing{
					Dose:          "25-50 mg/kg IV over 20 min",
					DosePerKg:     50,
					Route:         "IV infusion",
					Concentration: "50% diluted",
					Frequency:     "Single dose, may repeat once",
					MaxDose:       "2 g per dose",
					MaxDoseMg:     2000,
					Warning:       "Monitor respiratory rate and reflexes.",
				},
			},
			{
				Key: "torsades",
				Adult: Dosing{
					Dose:          "2 g IV over 10 min",
					FixedDoseMg:   2000,
					Route:         "IV",
					Concentration: "50% (500 mg/mL) diluted",
					Frequency:     "Single dose, may repeat once",
					MaxDose:       "4 g total",
					Volume:        "4 mL of 50% in 100 mL NS",
					Warning:       "For Torsades de Pointes specifically. Monitor BP during infusion.",
				},
				Pediatric: Dosing{
					Dose:          "25-50 mg/kg IV over 10-20 min",
					DosePerKg:     50,
					Route:         "IV",
					Concentration: "50% diluted",
					Frequency:     "Single dose",
					MaxDose:       "2 g per dose",
					MaxDoseMg:     2000,
					Warning:       "Monitor for hypotension and respiratory depression.",
				},
			},
		},
	},
	{
		Key:         "ketamine",
		GenericName: "Ketamine",
		Indications: []Indication{
			{
				Key: "sedation",
				Adult: Dosing{
					Dose:          "1-2 mg/kg IV or 4 mg/kg IM",
					DosePerKg:     1.5,
					Route:         "IV (slow push) or IM",
					Concentration: "50 mg/mL or 100 mg/mL",
					Frequency:     "May repeat 0.5-1 mg/kg IV every 10-15 min",
					MaxDose:       "4.5 mg/kg total IV",
					Warning:       "Dissociative agent. Maintain airway reflexes. May cause emergence reactions. Avoid in head injury with raised ICP.",
				},
				Pediatric: Dosing{
					Dose:          "1-2 mg/kg IV or 3-4 mg/kg IM",
					DosePerKg:     1.5,
					Route:         "IV or IM",
					Concentration: "50 mg/mL",
					Frequency:     "May repeat 0.5 mg/kg every 10 min",
					MaxDose:       "Based on weight",
					Warning:       "Excellent safety profile in children. Have suction ready.",
				},
			},
		},
	},
	{
		Key:         "ondansetron",
		GenericName: "Ondansetron (Zofran)",
		Indications: []Indication{
			{
				Key: "nausea",
				Adult: Dosing{
					Dose:          "4 mg IV or 4 mg ODT (oral dissolving tablet)",
					FixedDoseMg:   4,
					Route:         "IV (slow push over 2 min) or ODT",
					Concentration: "2 mg/mL",
					Frequency:     "Every 4-6 hours",
					MaxDose:       "16 mg/day",
					Volume:        "2 mL IV",
					Warning:       "May prolong QT interval. Use caution with other QT-prolonging drugs.",
				},
				Pediatric: Dosing{
					Dose:          "0.1 mg/kg IV (max 4 mg) or 4 mg ODT (>4y)",
					DosePerKg:     0.1,
					Route:         "IV or ODT",
					Concentration: "2 mg/mL",
					Frequency:     "Every 4-6 hours",
					MaxDose:       "4 mg per dose",
					MaxDoseMg:     4,
					Warning:       "Not recommended under 6 months. Check QTc if available.",
				},
			},
		},
	},
	{
		Key:         "dexamethasone",
		GenericName: "Dexamethasone",
		Indications: []Indication{
			{
				Key: "croup",
				Adult: Dosing{
					Dose:          "N/A (croup is pediatric)",
					Route:         "N/A",
					Concentration: "N/A",
					Frequency:     "N/A",
					MaxDose:       "N/A",
					Warning:       "Croup is a pediatric condition. See pediatric dosing.",
				},
				Pediatric: Dosing{
					Dose:          "0.6 mg/kg PO/IM",
					DosePerKg:     0.6,
					Route:         "PO (preferred) or IM",
					Concentration: "4 mg/mL",
					Frequency:     "Single dose",
					MaxDose:       "16 mg",
					MaxDoseMg:     16,
					Warning:       "Single dose is usually sufficient. Works within 1-2 hours.",
				},
			},
			{
				Key: "inflammation",
				Adult: Dosing{
					Dose:          "4-8 mg IV/IM",
					FixedDoseMg:   8,
					Route:         "IV or IM",
					Concentration: "4 mg/mL",
					Frequency:     "Every 6-12 hours",
					MaxDose:       "24 mg/day",
					Volume:        "2 mL (8 mg)",
					Warning:       "Not first-line in anaphylaxis (use adrenaline). Adjunct therapy only.",
				},
				Pediatric: Dosing{
					Dose:          "0.15-0.6 mg/kg IV/IM/PO",
					DosePerKg:     0.3,
					Route:         "IV/IM/PO",
					Concentration: "4 mg/mL",
					Frequency:     "Every 6-12 hours",
					MaxDose:       "16 mg per dose",
					MaxDoseMg:     16,
					Warning:       "Adjunct therapy. Not a substitute for adrenaline in anaphylaxis.",
				},
			},
		},
	},
	{
		Key:         "furosemide",
		GenericName: "Furosemide (Lasix)",
		Indications: []Indication{
			{
				Key: "pulmonary_edema",
				Adult: Dosing{
					Dose:          "40-80 mg IV",
					FixedDoseMg:   40,
					Route:         "IV (slow push over 2 min)",
					Concentration: "10 mg/mL",
					Frequency:     "May repeat in 1-2 hours",
					MaxDose:       "200 mg single dose",
					Volume:        "4 mL (40 mg)",
					Warning:       "Monitor BP (may cause hypotension). Monitor potassium. Ensure urinary catheter for large doses.",
				},
				Pediatric: Dosing{
					Dose:          "1 mg/kg IV",
					DosePerKg:     1.0,
					Route:         "IV (slow push)",
					Concentration: "10 mg/mL",
					Frequency:     "Every 6-8 hours",
					MaxDose:       "6 mg/kg/day",
					Warning:       "Monitor electrolytes and BP. May cause ototoxicity at high doses.",
				},
			},
		},
	},
}

var pregnancyWarnings = map[string]string{
	"adrenalin":          "May be used in pregnancy (life-saving). Can reduce uterine blood flow.",
	"amiodaron":          "Contraindicated in pregnancy (fetal thyroid dysfunction). Only for life-threatening arrhythmia.",
	"midazolam":          "Use with caution in pregnancy. Teratogenic risk in first trimester.",
	"atropine":           "May be used in pregnancy. Monitor for fetal tachycardia.",
	"morphine":           "Use with caution. Neonatal respiratory depression risk. Avoid close to delivery.",
	"salbutamol":         "Safe in pregnancy. Also used for tocolysis.",
	"sodium_bicarbonate": "May be used in pregnancy when indicated.",
	"calcium_gluconate":  "Safe in pregnancy. Antidote for Mg toxicity in eclampsia treatment.",
	"aspirin":            "Caution: contraindicated in 3rd trimester (premature ductus arteriosus closure).",
	"nitroglycerin":      "Caution: hypotension may impair fetal perfusion.",
	"magnesium_sulfate":  "First choice for eclamptic seizures. Monitor fetal heart rate.",
	"ketamine":           "Relatively safe in pregnancy. Increases uterine tone.",
	"ondansetron":        "Safe in pregnancy after first trimester. Used in hyperemesis gravidarum.",
	"dexamethasone":      "May be used for fetal lung maturation. Prolonged use inadvisable.",
	"furosemide":         "Use with caution in pregnancy. May reduce placental perfusion.",
}

const defaultPregnancyWarning = "Limited pregnancy safety data. Use with caution."

var drugIndex = func() map[string]*Drug {
	idx := make(map[string]*Drug, len(emergencyDrugs))
	for i := range emergencyDrugs {
		idx[emergencyDrugs[i].Key] = &emergencyDrugs[i]
	}
	return idx
}()

// Available lists all drug keys in declaration order.
func Available() []string {
	keys := make([]string, len(emergencyDrugs))
	for i, d := range emergencyDrugs {
		keys[i] = d.Key
	}
	return keys
}

// Indications lists the indication keys for a drug, or nil if unknown.
func Indications(drugName string) []string {
	d, ok := drugIndex[canonicalKey(drugName)]
	if !ok {
		return nil
	}
	keys := make([]string, len(d.Indications))
	for i, ind := range d.Indications {
		keys[i] = ind.Key
	}
	return keys
}
