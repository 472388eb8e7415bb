package models

import (
	"time"
)

// KafkaBetslipMessage is a batch of betslips from the ingestion side (OCR or forms)
type KafkaBetslipMessage struct {
	Betslips  []BetslipRequest `json:"betslips"`
	Timestamp time.Time        `json:"timestamp"`
	BatchID   string           `json:"batch_id"`
	Source    string           `json:"source"` // e.g. "ocr", "form"
}

// KafkaEvaluationMessage carries one finished evaluation to downstream consumers
type KafkaEvaluationMessage struct {
	Evaluation *Evaluation `json:"evaluation"`
	BatchID    string      `json:"batch_id"`
	Timestamp  time.Time   `json:"timestamp"`
}
