package kommo

type CreateLeadInput struct {
	Name     string
	Phone    string // E.164 quando possível, ex: "+5585999991234"
	Interest string
	Status   string
	Source   string
	Score    int
	Notes    string
}

type embeddedIDs struct {
	Embedded struct {
		Leads []struct {
			ID int `json:"id"`
		} `json:"leads"`
		Contacts []struct {
			ID int `json:"id"`
		} `json:"contacts"`
	} `json:"_embedded"`
}
