package validation

// Payload is the type-specific portion of a report submission. Exactly one
// variant applies per report_type; the variant is chosen by the discriminant
// alone, so fields belonging to another variant can never be persisted.
type Payload interface {
	isPayload()
}

type CopyrightPayload struct {
	WorkDescription string   `json:"work_description"`
	ProofLinks      []string `json:"proof_links"`
}

type TrademarkPayload struct {
	TrademarkName      string  `json:"trademark_name"`
	RegistrationNumber *string `json:"registration_number"`
	Jurisdiction       *string `json:"jurisdiction"`
}

type CounterfeitPayload struct {
	Brand       string  `json:"brand"`
	ProductType *string `json:"product_type"`
}

type ImpersonatorPayload struct {
	ImpersonatedEntity string   `json:"impersonated_entity"`
	EvidenceLinks      []string `json:"evidence_links"`
}

type OtherPayload struct {
	OtherDetails string `json:"other_details"`
}

func (CopyrightPayload) isPayload()    {}
func (TrademarkPayload) isPayload()    {}
func (CounterfeitPayload) isPayload()  {}
func (ImpersonatorPayload) isPayload() {}
func (OtherPayload) isPayload()        {}
