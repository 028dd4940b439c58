package engine

// screenings and vaccines are the reference tables. They are declared once and
// never mutated; Screenings and Vaccines hand out copies.
var screenings = [...]Item{
	{Name: "Hypertension", Test: "Blood Pressure Measurement", AgeRange: AgeRange{Min: 18, Unbounded: true}, Frequency: "Every 1-2 years"},
	{Name: "Tobacco Use", Test: "Smoking Cessation Counseling", AgeRange: AgeRange{Min: 18, Unbounded: true}, Criterion: CriterionSmoker, Frequency: "Ongoing counseling"},
	{Name: "Cervical Cancer", Test: "Pap Smear or HPV Test", AgeRange: AgeRange{Min: 21, Max: 65}, Criterion: CriterionFemale, Frequency: "Pap every 3 years, HPV every 5 years (30-65)"},
	{Name: "Colorectal Cancer", Test: "Stool-Based Tests, Colonoscopy, Sigmoidoscopy", AgeRange: AgeRange{Min: 45, Max: 75}, Frequency: "Stool tests yearly, colonoscopy every 10 years"},
	{Name: "Type 2 Diabetes", Test: "Fasting Blood Glucose or A1c", AgeRange: AgeRange{Min: 35, Max: 70}, Frequency: "Every 3 years"},
	{Name: "Lipid Disorders", Test: "Cholesterol/Lipid Panel", AgeRange: AgeRange{Min: 40, Max: 75}, Frequency: "Every 5 years or based on risk"},
	{Name: "Breast Cancer", Test: "Mammogram", AgeRange: AgeRange{Min: 50, Max: 74}, Criterion: CriterionFemale, Frequency: "Every 2 years"},
	{Name: "Lung Cancer", Test: "Low-Dose CT Scan", AgeRange: AgeRange{Min: 50, Max: 80}, Criterion: CriterionSmoker, Frequency: "Annually"},
	{Name: "Cardiovascular Disease", Test: "Stress test", AgeRange: AgeRange{Min: 50, Max: 59}, Frequency: "Individualized, based on physician advice"},
	{Name: "Abdominal Aortic Aneurysm", Test: "Ultrasonography", AgeRange: AgeRange{Min: 65, Max: 75}, Criterion: CriterionMaleSmoker, Frequency: "One-time"},
}

var vaccines = [...]Item{
	{Name: "Hepatitis B", AgeRange: AgeRange{Min: 0, Unbounded: true}, Frequency: "3 doses over 6 months", Kind: KindVaccine},
	{Name: "Hepatitis A", AgeRange: AgeRange{Min: 1, Unbounded: true}, Frequency: "2 doses, 6-12 months apart", Kind: KindVaccine},
	{Name: "MMR (Measles, Mumps, Rubella)", AgeRange: AgeRange{Min: 1, Unbounded: true}, Frequency: "2 doses (first at 12-15 months, second at 4-6 years)", Kind: KindVaccine},
	{Name: "Varicella (Chickenpox)", AgeRange: AgeRange{Min: 1, Unbounded: true}, Frequency: "2 doses (first at 12-15 months, second at 4-6 years)", Kind: KindVaccine},
	{Name: "Flu (Influenza)", AgeRange: AgeRange{Min: 0.5, Unbounded: true}, Frequency: "Annually during flu season", Kind: KindVaccine},
	{Name: "COVID-19", AgeRange: AgeRange{Min: 0.5, Unbounded: true}, Frequency: "Primary series + boosters as per CDC", Kind: KindVaccine},
	{Name: "HPV (Human Papillomavirus)", AgeRange: AgeRange{Min: 11, Max: 26}, Frequency: "2-3 doses depending on age at initiation", Kind: KindVaccine},
	{Name: "Meningococcal (MenACWY)", AgeRange: AgeRange{Min: 11, Max: 18}, Frequency: "First dose at 11-12 years, booster at 16", Kind: KindVaccine},
	{Name: "Tdap (Tetanus, Diphtheria, Pertussis)", AgeRange: AgeRange{Min: 11, Unbounded: true}, Frequency: "Once, then Td booster every 10 years", Kind: KindVaccine},
	{Name: "Meningococcal B", AgeRange: AgeRange{Min: 16, Max: 23}, Frequency: "2-3 doses depending on age at initiation", Kind: KindVaccine},
	{Name: "Zoster (Shingles)", AgeRange: AgeRange{Min: 50, Unbounded: true}, Frequency: "2 doses, 2-6 months apart", Kind: KindVaccine},
	{Name: "Pneumococcal (PCV13, PPSV23)", AgeRange: AgeRange{Min: 65, Unbounded: true}, Frequency: "One-time dose for most adults (PCV13); revaccination after 5 years (PPSV23)", Kind: KindVaccine},
}

// Screenings returns the screening table in declaration order.
func Screenings() []Item {
	out := make([]Item, len(screenings))
	copy(out, screenings[:])
	return out
}

// Vaccines returns the vaccine table in declaration order.
func Vaccines() []Item {
	out := make([]Item, len(vaccines))
	copy(out, vaccines[:])
	return out
}
