package models

// SignUpRequest is the registration form. Fields are required by contract but
// validated by the caller and the identity provider, not here.
type SignUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

// SignInRequest is the email and password sign-in form.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
