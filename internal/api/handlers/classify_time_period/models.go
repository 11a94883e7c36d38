package classify_time_period

import (
	classifyTimePeriod "github.com/m04kA/SMC-CleaningService/internal/usecase/classify_time_period"
)

// ClassificationResponse HTTP response model
type ClassificationResponse struct {
	Time       string  `json:"time"`
	Classified bool    `json:"classified"`
	Period     *Period `json:"period,omitempty"`
}

// Period период дня
type Period struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *classifyTimePeriod.Response) *ClassificationResponse {
	out := &ClassificationResponse{Time: resp.Time.String()}
	if resp.Period != nil {
		out.Classified = true
		out.Period = &Period{
			Code:      resp.Period.Code,
			Name:      resp.Period.Name,
			StartTime: resp.Period.StartTime.String(),
			EndTime:   resp.Period.EndTime.String(),
		}
	}
	return out
}
