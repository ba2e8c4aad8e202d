package knowledge

// Builtin returns the bundled protocol set used when no protocol files
// are present. Content follows ERC 2021 / ATLS / ILCOR guidance.
func Builtin() []Protocol {
	return []Protocol{
		{
			Name:     "Adult Cardiac Arrest (ALS Algorithm)",
			Category: "cardiac",
			Keywords: []string{"cardiac arrest", "cpr", "resuscitation", "defibrillation", "vf", "asystole", "pea", "als", "no pulse"},
			Sections: []Section{
				{Title: "Algorithm", Content: "1. Confirm cardiac arrest: Unresponsive, not breathing normally, no pulse\n" +
					"2. Start CPR 30:2, attach defibrillator\n" +
					"3. Assess rhythm:\n" +
					"   - Shockable (VF/pVT): Defibrillate 150-200J biphasic -> CPR 2 min\n" +
					"   - Non-shockable (PEA/Asystole): CPR 2 min"},
				{Title: "Drugs", Content: "4. After 3rd shock: Adrenaline 1mg IV + Amiodarone 300mg IV\n" +
					"5. Adrenaline 1mg IV every 3-5 min (non-shockable: give immediately)\n" +
					"6. After 5th shock: Amiodarone 150mg IV"},
				{Title: "Reversible causes (4H/4T)", Content: "Hypoxia, Hypovolemia, Hypo/Hyperkalemia, Hypothermia\n" +
					"Tension pneumothorax, Tamponade, Toxins, Thrombosis"},
			},
		},
		{
			Name:     "Anaphylaxis Management Protocol",
			Category: "allergy",
			Keywords: []string{"anaphylaxis", "allergic", "allergy", "adrenaline", "epinephrine", "bee sting", "swelling"},
			Sections: []Section{
				{Title: "Adrenaline IM (anterolateral thigh)", Content: "Adult: 0.5mg (0.5mL of 1:1000)\n" +
					"Child 6-12y: 0.3mg\n" +
					"Child <6y: 0.15mg\n" +
					"Repeat every 5 min if no improvement"},
				{Title: "Supportive care", Content: "Remove allergen if possible, call for help\n" +
					"Position: Supine with legs elevated (if breathing OK), sitting up if dyspnoeic\n" +
					"High-flow O2 15L/min\n" +
					"IV fluid bolus: 500-1000mL crystalloid (adult), 20mL/kg (child)\n" +
					"If bronchospasm: Salbutamol 5mg nebulized\n" +
					"Hydrocortisone IV: Adult 200mg, Child 100mg\n" +
					"Monitor: ECG, SpO2, BP every 5 min"},
			},
		},
		{
			Name:     "STEMI / Acute Coronary Syndrome Protocol",
			Category: "cardiac",
			Keywords: []string{"stemi", "chest pain", "myocardial", "heart attack", "acs", "st elevation", "coronary"},
			Sections: []Section{
				{Title: "Prehospital management", Content: "1. 12-lead ECG within 10 min of contact\n" +
					"2. Aspirin 300mg PO (chew)\n" +
					"3. GTN 0.4mg SL (if SBP > 90, no phosphodiesterase inhibitors)\n" +
					"4. Morphine 2-5mg IV titrated for pain (with antiemetic)\n" +
					"5. O2 only if SpO2 < 94%\n" +
					"6. Obtain IV access\n" +
					"7. Activate cath lab (door-to-balloon < 90 min)\n" +
					"8. Continuous monitoring: ECG, SpO2, BP\n" +
					"9. Be prepared for cardiac arrest (VF most common)"},
				{Title: "STEMI criteria", Content: "ST elevation >= 1mm in 2+ contiguous leads\n" +
					"or new LBBB with symptoms"},
			},
		},
		{
			Name:     "Trauma Primary Survey (ABCDE)",
			Category: "trauma",
			Keywords: []string{"trauma", "abcde", "primary survey", "bleeding", "hemorrhage", "fracture", "accident", "injury"},
			Sections: []Section{
				{Title: "A - Airway with C-spine protection", Content: "Jaw thrust (not head tilt), suction, OPA/NPA\n" +
					"Maintain inline stabilization"},
				{Title: "B - Breathing", Content: "Expose chest, look/listen/feel\n" +
					"Tension pneumothorax: needle decompression 2nd ICS MCL\n" +
					"Open pneumothorax: 3-sided occlusive dressing\n" +
					"Flail chest: positive pressure ventilation"},
				{Title: "C - Circulation", Content: "Control external hemorrhage (direct pressure, tourniquet)\n" +
					"2x large bore IV, crystalloid 250mL boluses\n" +
					"Target SBP 80-90 (permissive hypotension in penetrating trauma)\n" +
					"Pelvic binder if suspected pelvic fracture"},
				{Title: "D - Disability", Content: "GCS, pupils, blood glucose\n" +
					"AVPU: Alert, Voice, Pain, Unresponsive"},
				{Title: "E - Exposure/Environment", Content: "Full exposure, log roll\n" +
					"Prevent hypothermia"},
			},
		},
		{
			Name:     "Pediatric Basic and Advanced Life Support",
			Category: "pediatric",
			Keywords: []string{"pediatric", "child", "infant", "pals", "pediatric arrest", "rescue breaths"},
			Sections: []Section{
				{Title: "BLS", Content: "5 rescue breaths -> 15:2 CPR\n" +
					"Compression depth: 1/3 of chest AP diameter\n" +
					"Rate: 100-120/min"},
				{Title: "Drug doses (weight-based)", Content: "Adrenaline: 10 mcg/kg (0.1mL/kg of 1:10,000) IV/IO, every 3-5 min\n" +
					"Amiodarone: 5 mg/kg IV/IO (after 3rd shock)\n" +
					"Glucose: 2 mL/kg of 10% dextrose\n" +
					"Normal saline: 10 mL/kg bolus (repeat to max 40 mL/kg)\n" +
					"Defibrillation: 4 J/kg"},
				{Title: "Estimates", Content: "Weight estimation: (age + 4) x 2 kg\n" +
					"ETT size: (age/4) + 4 uncuffed, (age/4) + 3.5 cuffed\n" +
					"Common arrest causes in children: Hypoxia (most common), Hypovolemia"},
			},
		},
		{
			Name:     "Seizure / Status Epilepticus Protocol",
			Category: "neurology",
			Keywords: []string{"seizure", "epilepsy", "convulsion", "status epilepticus", "midazolam", "fitting"},
			Sections: []Section{
				{Title: "Initial management", Content: "1. Protect patient, ensure airway, O2, check glucose\n" +
					"2. Time the seizure"},
				{Title: "Status epilepticus (> 5 min)", Content: "First line: Midazolam\n" +
					"Adult: 10mg IM/buccal or 5mg IV\n" +
					"Child: 0.3mg/kg buccal (max 10mg) or 0.1mg/kg IV\n" +
					"Alternative: Diazepam 10mg IV adult, 0.3mg/kg IV child\n" +
					"If seizure continues after 10 min: repeat benzodiazepine ONCE\n" +
					"If refractory (>20 min): Phenytoin 20mg/kg IV or Levetiracetam 40mg/kg IV"},
				{Title: "Post-seizure", Content: "Recovery position, monitor, check glucose\n" +
					"Transport to hospital"},
			},
		},
		{
			Name:     "Crush Injury / Crush Syndrome Protocol",
			Category: "trauma",
			Keywords: []string{"crush", "entrapment", "earthquake", "rhabdomyolysis", "hyperkalemia", "extrication", "trapped"},
			Sections: []Section{
				{Title: "Pre-extrication (while still trapped)", Content: "CRITICAL: Start treatment BEFORE extrication!\n" +
					"IV access: Normal saline 1-1.5 L/hour\n" +
					"Sodium bicarbonate: 50 mEq in first liter\n" +
					"Calcium gluconate 10%: 10 mL IV (cardioprotection)\n" +
					"Do NOT apply tourniquet unless active arterial bleeding"},
				{Title: "During extrication", Content: "Continue aggressive IV fluids\n" +
					"Monitor ECG continuously (hyperkalemia risk)\n" +
					"Peaked T waves = give calcium gluconate immediately"},
				{Title: "Post-extrication", Content: "Continue NS 500 mL/hour\n" +
					"Monitor urine output (target > 200 mL/hour)\n" +
					"If dark/cola-colored urine: increase fluids + bicarbonate\n" +
					"Watch for compartment syndrome\n" +
					"Complications: Hyperkalemia, rhabdomyolysis, renal failure, DIC\n" +
					"EARTHQUAKE SPECIFIC: Expect multiple crush patients. Pre-stage IV fluids."},
			},
		},
		{
			Name:     "START Triage Algorithm for Mass Casualty Incidents",
			Category: "triage",
			Keywords: []string{"triage", "start", "jumpstart", "mass casualty", "mci", "disaster"},
			Sections: []Section{
				{Title: "START (adult)", Content: "Step 1: Can the patient walk? YES -> GREEN (Minor)\n" +
					"Step 2: Is the patient breathing? NO -> Open airway -> Still not breathing -> BLACK (Deceased)\n" +
					"Step 3: Respiratory rate > 30/min -> RED (Immediate)\n" +
					"Step 4: No radial pulse OR cap refill > 2 sec -> RED (Immediate)\n" +
					"Step 5: Cannot follow simple commands -> RED (Immediate)\n" +
					"Otherwise -> YELLOW (Delayed)"},
				{Title: "JumpSTART (pediatric < 8 years)", Content: "Same flow but: RR < 15 or > 45 = RED\n" +
					"Not breathing: give 5 rescue breaths, then reassess\n" +
					"Use AVPU instead of 'follows commands'"},
			},
		},
		{
			Name:     "Acute Asthma / Bronchospasm Protocol",
			Category: "respiratory",
			Keywords: []string{"asthma", "bronchospasm", "wheezing", "salbutamol", "dyspnea", "shortness of breath"},
			Sections: []Section{
				{Title: "Mild-Moderate", Content: "Salbutamol 5mg nebulized (can repeat every 20 min)\n" +
					"O2 to target SpO2 94-98%"},
				{Title: "Severe (can't complete sentences, RR>25, HR>110)", Content: "Salbutamol 5mg nebulized back-to-back\n" +
					"Ipratropium 0.5mg nebulized\n" +
					"Prednisolone 40-50mg PO or Hydrocortisone 100mg IV\n" +
					"O2 high flow"},
				{Title: "Life-threatening (SpO2<92, silent chest, cyanosis, altered consciousness)", Content: "All of above PLUS\n" +
					"Magnesium sulfate 1.2-2g IV over 20 min\n" +
					"Consider adrenaline 0.5mg IM\n" +
					"Prepare for intubation\n" +
					"Ketamine 0.5-1 mg/kg IV for bronchodilation\n" +
					"Pediatric: Salbutamol 2.5mg neb (<5y), 5mg neb (>5y)"},
			},
		},
		{
			Name:     "Pre-eclampsia / Eclampsia Protocol",
			Category: "obstetric",
			Keywords: []string{"eclampsia", "pre-eclampsia", "pregnancy", "pregnant", "magnesium", "obstetric", "hypertension pregnancy"},
			Sections: []Section{
				{Title: "Recognition", Content: "Signs: BP > 140/90, headache, visual disturbances, epigastric pain, edema\n" +
					"Eclampsia = pre-eclampsia + seizures"},
				{Title: "Management", Content: "1. ABCs, left lateral position\n" +
					"2. Magnesium Sulfate (drug of choice for eclamptic seizures):\n" +
					"   Loading: 4g IV over 15-20 min\n" +
					"   Maintenance: 1g/hour IV infusion\n" +
					"   Monitor: Deep tendon reflexes, RR (stop if RR<12), urine output\n" +
					"   Antidote: Calcium gluconate 1g IV if Mg toxicity\n" +
					"3. Antihypertensives if SBP > 160 or DBP > 110: Labetalol 20mg IV or Hydralazine 5mg IV\n" +
					"4. O2 high flow\n" +
					"5. IV access, monitor fetal heart rate\n" +
					"6. Rapid transport to hospital with obstetric capability\n" +
					"7. Definitive treatment = delivery"},
			},
		},
	}
}
