package pagination

// limit/offset query parameters; embed in a handler's query struct
type Page struct {
	Limit  int `form:"limit" binding:"omitempty,min=0"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// resolved limit and offset
type Params struct {
	Limit  int
	Offset int
}

// pagination metadata for list responses
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// applies defaults and the upper bound to a bound query
func (p Page) Params(defaultLimit, maxLimit int) Params {
	return DefaultParams(p.Limit, p.Offset, defaultLimit, maxLimit)
}

func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset+params.Limit < total,
	}
}

// a non-positive limit becomes defaultLimit, anything above maxLimit is capped
func DefaultParams(limit, offset, defaultLimit, maxLimit int) Params {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Params{
		Limit:  limit,
		Offset: offset,
	}
}
