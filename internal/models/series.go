package models

// DailyCase is one (country, date) row of the daily global series.
type DailyCase struct {
	Date           Date   `csv:"date"`
	Country        string `csv:"country"`
	DailyNewCases  Float  `csv:"daily_new_cases"`
	DailyNewDeaths Float  `csv:"daily_new_deaths"`
}

// DailyColumns lists the header names a daily series file must carry.
var DailyColumns = []string{"date", "country", "daily_new_cases", "daily_new_deaths"}

// Vaccination is one (country, date) row of the vaccination series.
type Vaccination struct {
	Date                        Date   `csv:"date"`
	Country                     string `csv:"country"`
	DailyVaccinations           Float  `csv:"daily_vaccinations"`
	DailyVaccinationsPerMillion Float  `csv:"daily_vaccinations_per_million"`
}

// VaccinationColumns lists the header names a vaccination file must carry.
var VaccinationColumns = []string{"date", "country", "daily_vaccinations", "daily_vaccinations_per_million"}

// CaseVaccination pairs the new cases and vaccinations of one country on one day.
type CaseVaccination struct {
	Date         Date
	NewCases     float64
	Vaccinations float64
}
