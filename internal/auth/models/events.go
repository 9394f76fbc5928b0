package models

// UserCreatedData is the payload of the app/user.created event. It carries the
// profile answers the identity provider never sees.
type UserCreatedData struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

// UserCreatedFrom builds the event payload from a registration.
func UserCreatedFrom(req SignUpRequest) UserCreatedData {
	return UserCreatedData{
		Email:             req.Email,
		Name:              req.FullName,
		Country:           req.Country,
		InvestmentGoals:   req.InvestmentGoals,
		RiskTolerance:     req.RiskTolerance,
		PreferredIndustry: req.PreferredIndustry,
	}
}
