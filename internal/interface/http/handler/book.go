package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiaolin/libfund/internal/application/book"
	apprating "github.com/xiaolin/libfund/internal/application/rating"
	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/interface/http/dto"
	"github.com/xiaolin/libfund/pkg/metrics"
	"github.com/xiaolin/libfund/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	addBookUseCase   *appbook.AddBookUseCase
	findBookUseCase  *appbook.FindBookUseCase
	languagesUseCase *appbook.LanguagesUseCase
	addRatingUseCase *apprating.AddRatingUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *appbook.AddBookUseCase,
	findBookUseCase *appbook.FindBookUseCase,
	languagesUseCase *appbook.LanguagesUseCase,
	addRatingUseCase *apprating.AddRatingUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:   addBookUseCase,
		findBookUseCase:  findBookUseCase,
		languagesUseCase: languagesUseCase,
		addRatingUseCase: addRatingUseCase,
	}
}

// AddBook 图书入藏
// @Summary      图书入藏
// @Description  管理员添加新书到馆藏（需要管理员权限）。ISBN不可重复，作者按姓名去重共享
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse} "入藏成功"
// @Failure      200 {object} response.Response "40009 ISBN重复 / 40900 参数错误"
// @Router       /admin/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	pubDate, err := time.Parse("2006-01-02", req.PublicationDate)
	if err != nil {
		response.ErrorWithCode(c, 40900, "出版日期格式错误，应为YYYY-MM-DD")
		return
	}

	b, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Title:           req.Title,
		Authors:         req.Authors,
		ISBN:            req.ISBN,
		ISBN13:          req.ISBN13,
		Language:        req.Language,
		NumPages:        req.NumPages,
		Publisher:       req.Publisher,
		PublicationDate: pubDate,
		AgeLimit:        req.AgeLimit,
		CountInFund:     req.CountInFund,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(&appbook.BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Authors:         b.Authors,
		ISBN:            b.ISBN,
		ISBN13:          b.ISBN13,
		Language:        b.Language,
		NumPages:        b.NumPages,
		Publisher:       b.Publisher,
		PublicationDate: b.PublicationDate.Format("2006-01-02"),
		AgeLimit:        b.AgeLimit,
		AverageRating:   b.AverageRating,
		RatingsCount:    b.RatingsCount,
		CountInFund:     b.CountInFund,
		Available:       b.IsAvailable(),
	}))
}

// FindBook 查询图书
// @Summary      查询图书
// @Description  按书名/作者/ISBN/语种查询一本图书，by参数指定查询方式（title/author/isbn/language/id）
// @Tags         图书模块
// @Produce      json
// @Param        by query string true "查询方式" Enums(id, title, isbn, author, language)
// @Param        q query string true "查询值"
// @Success      200 {object} response.Response{data=dto.BookResponse} "查询成功"
// @Failure      200 {object} response.Response "40402 图书不存在 / 40900 参数错误"
// @Router       /books [get]
func (h *BookHandler) FindBook(c *gin.Context) {
	q, ok := buildQuery(c)
	if !ok {
		return
	}

	result, err := h.findBookUseCase.Execute(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// Languages 馆藏语种分页
// @Summary      馆藏语种列表
// @Description  分页返回馆藏图书的语种（去重，每页默认5个，对话层翻页浏览）
// @Tags         图书模块
// @Produce      json
// @Param        offset query int false "偏移量" default(0)
// @Param        limit query int false "每页大小" default(5)
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Router       /books/languages [get]
func (h *BookHandler) Languages(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.languagesUseCase.Execute(c.Request.Context(), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Languages, result.Total, result.Offset, result.Limit)
}

// AddRating 评分
// @Summary      图书评分
// @Description  读者给图书打分（1-5），均值按增量加权公式更新，并发评分按图书行串行化
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.AddRatingRequest true "评分"
// @Success      200 {object} response.Response "评分成功"
// @Failure      200 {object} response.Response "40402 图书不存在 / 40900 评分超出范围"
// @Router       /books/{id}/ratings [post]
func (h *BookHandler) AddRating(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	if err := h.addRatingUseCase.Execute(c.Request.Context(), uint(id), req.Rating); err != nil {
		response.Error(c, err)
		return
	}

	if metrics.RatingsAddedTotal != nil {
		metrics.RatingsAddedTotal.Inc()
	}

	response.Success(c, nil)
}

// =========================================
// 辅助函数
// =========================================

// buildQuery 解析查询参数为查询变体,失败时已写响应
func buildQuery(c *gin.Context) (book.Query, bool) {
	by := c.Query("by")
	value := c.Query("q")

	switch by {
	case "id":
		id, err := strconv.ParseUint(value, 10, 32)
		if err != nil || id == 0 {
			response.ErrorWithCode(c, 40900, "无效的图书ID")
			return book.Query{}, false
		}
		return book.Query{Kind: book.FindByID, ID: uint(id)}, true
	case "title":
		return book.Query{Kind: book.FindByTitle, Title: value}, true
	case "isbn":
		return book.Query{Kind: book.FindByISBN, ISBN: value}, true
	case "author":
		return book.Query{Kind: book.FindByAuthor, Author: value}, true
	case "language":
		return book.Query{Kind: book.FindByLanguage, Language: value}, true
	default:
		response.ErrorWithCode(c, 40900, "无效的查询方式，支持: id/title/isbn/author/language")
		return book.Query{}, false
	}
}

// toBookDTO 应用层响应 → HTTP DTO
func toBookDTO(r *appbook.BookResponse) *dto.BookResponse {
	return &dto.BookResponse{
		ID:              r.ID,
		Title:           r.Title,
		Authors:         r.Authors,
		ISBN:            r.ISBN,
		ISBN13:          r.ISBN13,
		Language:        r.Language,
		NumPages:        r.NumPages,
		Publisher:       r.Publisher,
		PublicationDate: r.PublicationDate,
		AgeLimit:        r.AgeLimit,
		AverageRating:   r.AverageRating,
		RatingsCount:    r.RatingsCount,
		CountInFund:     r.CountInFund,
		Available:       r.Available,
	}
}
