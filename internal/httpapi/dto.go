package httpapi

import (
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/scheduler"
)

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type deviceResponse struct {
	DeviceID string `json:"deviceId"`
	Token    string `json:"token"`
}

type medicationDTO struct {
	Name          string `json:"name"`
	Dosage        string `json:"dosage"`
	Frequency     string `json:"frequency"`
	TimeLastGiven string `json:"timeLastGiven"`
}

type profileDTO struct {
	ChildName         string          `json:"childName"`
	ChildAge          int             `json:"childAge"`
	IllnessTypes      []string        `json:"illnessTypes"`
	ChildEnergyLevel  string          `json:"childEnergyLevel"`
	ParentEnergyLevel string          `json:"parentEnergyLevel"`
	Medications       []medicationDTO `json:"medications"`
}

type medicationsRequest struct {
	Medications []medicationDTO `json:"medications"`
}

type generateRequest struct {
	CurrentTime         string  `json:"currentTime,omitempty"`
	Incident            *string `json:"incident,omitempty"`
	IncidentDescription *string `json:"incidentDescription,omitempty"`
}

type planItemDTO struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Time        string   `json:"time"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	IsGentle    bool     `json:"isGentle"`
}

type planResponse struct {
	Date     string        `json:"date"`
	Items    []planItemDTO `json:"items"`
	Source   string        `json:"source,omitempty"`
	Incident *string       `json:"incident"`
	Gentle   bool          `json:"gentle"`
	Saved    bool          `json:"saved"`
}

type updateItemRequest struct {
	Status string `json:"status"`
	Date   string `json:"date,omitempty"`
}

type incidentDTO struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Category    *string   `json:"category"`
	Description string    `json:"description"`
}

type dayRecordDTO struct {
	Date        string          `json:"date"`
	Profile     profileDTO      `json:"profile"`
	Medications []medicationDTO `json:"medications"`
	Plan        []planItemDTO   `json:"plan"`
	Incidents   []incidentDTO   `json:"incidents"`
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Incident   *string `json:"incident"`
	Score      int     `json:"score"`
	Confidence float64 `json:"confidence"`
}

type transcribeResponse struct {
	Transcription string  `json:"transcription"`
	Incident      *string `json:"incident"`
	Confidence    float64 `json:"confidence"`
}

func (d profileDTO) toDomain() (domain.ChildProfile, []domain.Medication) {
	p := domain.ChildProfile{
		Name:              d.ChildName,
		Age:               d.ChildAge,
		ChildEnergyLevel:  domain.ChildEnergy(d.ChildEnergyLevel),
		ParentEnergyLevel: domain.ParentEnergy(d.ParentEnergyLevel),
	}
	for _, it := range d.IllnessTypes {
		p.IllnessTypes = append(p.IllnessTypes, domain.IllnessType(it))
	}
	return p, medicationsToDomain(d.Medications)
}

func medicationsToDomain(in []medicationDTO) []domain.Medication {
	out := make([]domain.Medication, 0, len(in))
	for _, m := range in {
		out = append(out, domain.Medication{
			Name:          m.Name,
			Dosage:        m.Dosage,
			Frequency:     domain.Frequency(m.Frequency),
			TimeLastGiven: m.TimeLastGiven,
		})
	}
	return out
}

func toProfileDTO(p domain.ChildProfile, meds []domain.Medication) profileDTO {
	return profileDTO{
		ChildName:         p.Name,
		ChildAge:          p.Age,
		IllnessTypes:      p.IllnessNames(),
		ChildEnergyLevel:  string(p.ChildEnergyLevel),
		ParentEnergyLevel: string(p.ParentEnergyLevel),
		Medications:       toMedicationDTOs(meds),
	}
}

func toMedicationDTOs(meds []domain.Medication) []medicationDTO {
	out := make([]medicationDTO, 0, len(meds))
	for _, m := range meds {
		out = append(out, medicationDTO{
			Name:          m.Name,
			Dosage:        m.Dosage,
			Frequency:     string(m.Frequency),
			TimeLastGiven: m.TimeLastGiven,
		})
	}
	return out
}

func toPlanItemDTO(it domain.PlanItem) planItemDTO {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return planItemDTO{
		ID:          it.ID,
		Type:        string(it.Type),
		Title:       it.Title,
		Description: it.Description,
		Time:        it.Time,
		Category:    it.Category,
		Tags:        tags,
		Status:      string(it.Status),
		IsGentle:    it.IsGentle,
	}
}

func toPlanItemDTOs(items []domain.PlanItem) []planItemDTO {
	out := make([]planItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toPlanItemDTO(it))
	}
	return out
}

func toPlanResponse(resp *app.PlanResponse) planResponse {
	return planResponse{
		Date:     resp.Date,
		Items:    toPlanItemDTOs(resp.Items),
		Source:   string(resp.Source),
		Incident: incidentString(resp.Incident),
		Gentle:   resp.Gentle,
		Saved:    resp.Saved,
	}
}

func toDayRecordDTO(rec *domain.DayRecord) dayRecordDTO {
	incidents := make([]incidentDTO, 0, len(rec.Incidents))
	for _, inc := range rec.Incidents {
		incidents = append(incidents, incidentDTO{
			ID:          inc.ID,
			Timestamp:   inc.Timestamp,
			Category:    incidentString(inc.Category),
			Description: inc.Description,
		})
	}
	return dayRecordDTO{
		Date:        rec.Date,
		Profile:     toProfileDTO(rec.Profile, nil),
		Medications: toMedicationDTOs(rec.Medications),
		Plan:        toPlanItemDTOs(rec.Plan),
		Incidents:   incidents,
	}
}

func toClassifyResponse(c scheduler.Classification) classifyResponse {
	return classifyResponse{
		Incident:   incidentString(c.Incident),
		Score:      c.Score,
		Confidence: c.Confidence,
	}
}

func incidentString(inc *domain.Incident) *string {
	if inc == nil {
		return nil
	}
	s := string(*inc)
	return &s
}
