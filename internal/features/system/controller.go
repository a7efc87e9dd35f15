package system

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckResponse struct {
	Status             string  `json:"status"`
	CPUUsagePercent    float64 `json:"cpuUsagePercent"`
	MemoryUsagePercent float64 `json:"memoryUsagePercent"`
}

type HealthcheckController struct{}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthcheck", c.Healthcheck)
}

// Healthcheck
// @Summary Service healthcheck
// @Description Get service status with host CPU and memory utilization
// @Tags system
// @Produce json
// @Success 200 {object} system.HealthcheckResponse
// @Router /healthcheck [get]
func (c *HealthcheckController) Healthcheck(ctx *gin.Context) {
	response := HealthcheckResponse{Status: "ok"}

	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		response.CPUUsagePercent = cpuPercents[0]
	}

	if memStat, err := mem.VirtualMemory(); err == nil {
		response.MemoryUsagePercent = memStat.UsedPercent
	}

	ctx.JSON(http.StatusOK, response)
}
