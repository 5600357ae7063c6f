package list_enquiries

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries/models"
)

// FromQuery разбирает параметры ?status=&date=&customerId=&limit=&offset=
func FromQuery(q url.Values) (*models.ListEnquiriesRequest, error) {
	req := &models.ListEnquiriesRequest{}

	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("date"); v != "" {
		req.Date = &v
	}

	if v := q.Get("customerId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: customerId must be a positive number", domain.ErrValidation)
		}
		req.CustomerID = &id
	}

	var err error
	if req.Limit, err = parseUint(q, "limit"); err != nil {
		return nil, err
	}
	if req.Offset, err = parseUint(q, "offset"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseUint(q url.Values, key string) (uint64, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrValidation, key)
	}
	return n, nil
}
