package statsdto

// StatsQueryInput tham số truy vấn thống kê: loại cửa sổ và ngày neo.
// Date theo dạng 2006-01-02, hiểu trong múi giờ nhà hàng; bỏ trống = hôm nay.
type StatsQueryInput struct {
	Window string `query:"window" json:"window" validate:"required,window_kind"`
	Date   string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}
