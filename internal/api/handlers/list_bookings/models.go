package list_bookings

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/service/bookings/models"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// ToServiceRequest создает запрос сервиса из query параметров
// startDate, endDate, cleanerIds, channelId, status, includeCancelled, limit, offset
func ToServiceRequest(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Limit: defaultLimit}

	var err error
	if req.StartDate, err = handlers.ParseOptionalDate(q.Get("startDate")); err != nil {
		return nil, err
	}
	if req.EndDate, err = handlers.ParseOptionalDate(q.Get("endDate")); err != nil {
		return nil, err
	}
	if req.CleanerIDs, err = handlers.ParseIDList(q.Get("cleanerIds")); err != nil {
		return nil, err
	}

	if v := q.Get("channelId"); v != "" {
		channelID, err := handlers.ParseID(v)
		if err != nil {
			return nil, err
		}
		req.ChannelID = &channelID
	}

	if v := q.Get("status"); v != "" {
		req.Status = &v
	}

	if v := q.Get("includeCancelled"); v != "" {
		if req.IncludeCancelled, err = strconv.ParseBool(v); err != nil {
			return nil, err
		}
	}

	if v := q.Get("limit"); v != "" {
		if req.Limit, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, err
		}
		if req.Limit == 0 || req.Limit > maxLimit {
			req.Limit = maxLimit
		}
	}
	if v := q.Get("offset"); v != "" {
		if req.Offset, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, err
		}
	}

	return req, nil
}
