package models

import "encoding/json"

// ConfirmFlightRequest finalizes a booking against the original search
// session. SelectedFlightID must be the outbound's combination id when the
// fare is bundled, otherwise its plain id.
type ConfirmFlightRequest struct {
	SearchSessionID  string   `json:"searchSessionId"`
	SelectedFlightID string   `json:"selectedFlightId"`
	ReturnFlightID   string   `json:"returnFlightId,omitempty"`
	TravelerIDs      []string `json:"travelerIds"`
	CompanyID        string   `json:"companyId"`
	TravelReportID   string   `json:"travelReportId,omitempty"`
	CostCenterID     string   `json:"costCenterId,omitempty"`
	Title            string   `json:"title,omitempty"`
}

// TravelBooked is the created-trip half of the confirmation union.
type TravelBooked struct {
	TravelID             string   `json:"travelId"`
	TravelItemID         string   `json:"travelItemId"`
	Status               string   `json:"status,omitempty"`
	RequiresApproval     bool     `json:"requiresApproval"`
	ValidationViolations []string `json:"validationViolations,omitempty"`
	TravelReportID       string   `json:"travelReportId,omitempty"`
}

// PaymentInitiated is the consumer-flow half of the confirmation union.
type PaymentInitiated struct {
	PaymentID   string  `json:"paymentId,omitempty"`
	CheckoutURL string  `json:"checkoutUrl,omitempty"`
	Provider    string  `json:"provider,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

type OutcomeKind string

const (
	OutcomeTravel  OutcomeKind = "travel"
	OutcomePayment OutcomeKind = "payment"
)

// ConfirmOutcome is the tagged form of the confirmation response. The backend
// returns no explicit type tag, so the raw payload is inspected exactly once
// at the API-client boundary and downstream code only ever sees the tag.
type ConfirmOutcome struct {
	Kind    OutcomeKind       `json:"kind"`
	Travel  *TravelBooked     `json:"travel,omitempty"`
	Payment *PaymentInitiated `json:"payment,omitempty"`
}

// DecodeConfirmOutcome discriminates the raw confirmation payload. Presence
// of a non-empty travel id (camelCase or PascalCase) selects the travel
// branch; anything else is treated as a payment initiation.
func DecodeConfirmOutcome(raw []byte) (ConfirmOutcome, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ConfirmOutcome{}, err
	}

	if hasTravelID(probe) {
		var travel TravelBooked
		if err := json.Unmarshal(raw, &travel); err != nil {
			return ConfirmOutcome{}, err
		}
		return ConfirmOutcome{Kind: OutcomeTravel, Travel: &travel}, nil
	}

	var payment PaymentInitiated
	if err := json.Unmarshal(raw, &payment); err != nil {
		return ConfirmOutcome{}, err
	}
	return ConfirmOutcome{Kind: OutcomePayment, Payment: &payment}, nil
}

func hasTravelID(probe map[string]json.RawMessage) bool {
	for _, key := range []string{"travelId", "TravelId"} {
		raw, ok := probe[key]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			return true
		}
	}
	return false
}

// Travel is the created trip as returned by the backend, used to resolve the
// parent report when the confirmation response omits it.
type Travel struct {
	ID             string `json:"id"`
	TravelReportID string `json:"travelReportId,omitempty"`
	Status         string `json:"status,omitempty"`
}
