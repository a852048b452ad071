package api

import (
	"errors"
	"strconv"

	"ledger/database"
	"ledger/middleware"
	"ledger/models"
	"ledger/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	ledger *service.LedgerService
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{
		ledger: service.NewLedgerService(),
	}
}

// CreateExpenseRequest 创建消费记录请求
// 字段校验在服务层按固定顺序进行，这里只做 JSON 解析
type CreateExpenseRequest struct {
	CategoryID  uint   `json:"category_id" example:"1"`
	Amount      string `json:"amount" example:"99.50"`
	Description string `json:"description" example:"午餐"`
	Date        string `json:"date" example:"2024-01-15"` // 留空默认今天
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 创建一条新的消费记录，校验失败时 data.field 指明第一个失败字段
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=service.ExpenseDetail} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	detail, err := h.ledger.Create(userID, service.CreateExpenseInput{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			ValidationFailed(c, vErr.Field, vErr.Message)
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建消费记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", detail)
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 获取当前用户的全部消费记录，按消费日期倒序、同日按录入时间倒序
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.ExpenseDetail} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.ledger.ListAll(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询消费记录失败"))
		return
	}

	Success(c, list)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Description 删除当前用户的一条消费记录（物理删除），记录不存在或不属于当前用户时返回 404
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "ID 格式错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "ID 格式错误")
		return
	}

	if err := h.ledger.Delete(uint(id), userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "记录不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "删除消费记录失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// GetCategories 获取消费类别列表
// @Summary 获取消费类别列表
// @Description 获取全部预置消费类别（含颜色），按排序值升序
// @Tags 消费记录
// @Produce json
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/v1/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("sort ASC, id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询类别失败"))
		return
	}

	Success(c, categories)
}
