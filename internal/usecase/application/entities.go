package application

import "github.com/shopspring/decimal"

type CreateInput struct {
	InstitutionID   string
	InstitutionName string
	EducationLevel  string
	CourseOfStudy   string
	RequestedAmount decimal.Decimal
	FundCategory    string
}
