package request

// ByIDRequest binds a booking id path parameter (e.g. BK1718000000000).
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,startswith=BK"`
}

// ListParams carries common pagination query parameters.
type ListParams struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}
