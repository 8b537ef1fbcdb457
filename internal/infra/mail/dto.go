package mail

type HotLeadEmailData struct {
	ID           int
	Name         string
	Phone        string
	Score        int
	Interest     string
	History      string
	Source       string
	DashboardURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string

	dialer dialer
}
