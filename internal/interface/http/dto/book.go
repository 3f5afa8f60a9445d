package dto

// AddBookRequest 图书入藏请求（管理端）
type AddBookRequest struct {
	Title           string   `json:"title" binding:"required" example:"三体"`
	Authors         []string `json:"authors" binding:"required,min=1" example:"刘慈欣"`
	ISBN            string   `json:"isbn" binding:"required,len=10" example:"7536692935"`
	ISBN13          string   `json:"isbn13" binding:"required,len=13" example:"9787536692930"`
	Language        string   `json:"language" binding:"required" example:"chi"`
	NumPages        int      `json:"num_pages" binding:"gte=0" example:"302"`
	Publisher       string   `json:"publisher" example:"重庆出版社"`
	PublicationDate string   `json:"publication_date" binding:"required" example:"2008-01-01"` // YYYY-MM-DD
	AgeLimit        int      `json:"age_limit" binding:"gte=0" example:"12"`
	CountInFund     int      `json:"count_in_fund" binding:"gte=0" example:"5"`
}

// BookResponse 图书响应
type BookResponse struct {
	ID              uint     `json:"id" example:"1"`
	Title           string   `json:"title" example:"三体"`
	Authors         []string `json:"authors" example:"刘慈欣"`
	ISBN            string   `json:"isbn" example:"7536692935"`
	ISBN13          string   `json:"isbn13" example:"9787536692930"`
	Language        string   `json:"language" example:"chi"`
	NumPages        int      `json:"num_pages" example:"302"`
	Publisher       string   `json:"publisher" example:"重庆出版社"`
	PublicationDate string   `json:"publication_date" example:"2008-01-01"`
	AgeLimit        int      `json:"age_limit" example:"12"`
	AverageRating   float64  `json:"average_rating" example:"4.5"`
	RatingsCount    int      `json:"ratings_count" example:"10"`
	CountInFund     int      `json:"count_in_fund" example:"3"`
	Available       bool     `json:"available" example:"true"`
}

// AddRatingRequest 评分请求
type AddRatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"5"` // 1-5
}
