package api

import (
	"strconv"

	"ledger/middleware"
	"ledger/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 消费统计处理器
type SummaryHandler struct {
	aggregation *service.AggregationService
}

// NewSummaryHandler 创建消费统计处理器
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{
		aggregation: service.NewAggregationService(),
	}
}

// GetSummary 获取消费统计概览
// @Summary 获取消费统计概览
// @Description 一次返回消费总额、按类别汇总、最近记录和月度趋势，供首页展示
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param limit query int false "最近记录条数" default(10)
// @Param months query int false "趋势统计月数" default(6)
// @Success 200 {object} Response "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	months, _ := strconv.Atoi(c.DefaultQuery("months", "0"))

	total, err := h.aggregation.Total(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计消费总额失败"))
		return
	}

	byCategory, err := h.aggregation.ByCategory(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "按类别统计失败"))
		return
	}

	recent, err := h.aggregation.Recent(userID, limit)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询最近消费记录失败"))
		return
	}

	trend, err := h.aggregation.MonthlyTrend(userID, months)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "按月统计失败"))
		return
	}

	Success(c, gin.H{
		"total":         total,
		"by_category":   byCategory,
		"recent":        recent,
		"monthly_trend": trend,
	})
}

// GetTotal 获取消费总额
// @Summary 获取消费总额
// @Description 获取当前用户的全部消费总额，无记录时为 0
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/summary/total [get]
func (h *SummaryHandler) GetTotal(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	total, err := h.aggregation.Total(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计消费总额失败"))
		return
	}

	Success(c, gin.H{"total": total})
}

// GetByCategory 获取按类别汇总
// @Summary 获取按类别汇总
// @Description 按类别汇总当前用户的消费金额，按总额倒序
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.CategoryTotal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/summary/by-category [get]
func (h *SummaryHandler) GetByCategory(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.aggregation.ByCategory(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "按类别统计失败"))
		return
	}

	Success(c, list)
}

// GetMonthlyTrend 获取月度趋势
// @Summary 获取月度趋势
// @Description 最近 N 个有消费记录的月份的支出趋势，时间升序，没有消费的月份不出现
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param months query int false "统计月数" default(6)
// @Success 200 {object} Response{data=[]service.MonthTotal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/summary/trend [get]
func (h *SummaryHandler) GetMonthlyTrend(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	months, _ := strconv.Atoi(c.DefaultQuery("months", "0"))

	list, err := h.aggregation.MonthlyTrend(userID, months)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "按月统计失败"))
		return
	}

	Success(c, list)
}
