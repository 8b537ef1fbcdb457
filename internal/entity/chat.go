package entity

type Sender string

const (
	SenderLead     Sender = "lead"
	SenderOperator Sender = "operator"
)

type ChatMessage struct {
	From          Sender `json:"from"`
	Text          string `json:"text"`
	Time          string `json:"time"`
	IsAIGenerated bool   `json:"isAIGenerated"`
}

// TimeLayout is the display format of ChatMessage.Time.
const TimeLayout = "15:04"
