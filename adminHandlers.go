package main

import (
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"bitbucket.org/mmdatafocus/bizmanager_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func listBusinessesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		results, err := models.GetBusinesses(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"businesses": results})
	}
}

func createBusinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		var input models.NewBusiness
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, bindErrorPayload(err))
			return
		}
		business, err := models.CreateBusiness(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, business)
	}
}

func deleteBusinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		business, err := models.DeleteBusiness(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		// Deleting an already-deleted business acks without a body.
		if business == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, business)
	}
}

func businessDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		detail, err := reports.GetBusinessDetail(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func listEmployeesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		results, err := models.GetEmployeesByBusiness(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"employees": results})
	}
}

func createEmployeeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		var input models.NewEmployee
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, bindErrorPayload(err))
			return
		}
		employee, err := models.CreateEmployee(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, employee)
	}
}

func deleteEmployeeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
			return
		}
		employee, err := models.DeleteEmployee(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		// Deleting an already-deleted employee acks without a body.
		if employee == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, employee)
	}
}

func adminOverviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		overview, err := reports.GetAdminOverview(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}

func rangedReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		rangeType := c.DefaultQuery("range", "monthly")
		report, err := reports.GetRangedReport(c.Request.Context(), rangeType)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func exportReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		rangeType := c.DefaultQuery("range", "monthly")
		report, err := reports.GetRangedReport(c.Request.Context(), rangeType)
		if err != nil {
			respondError(c, err)
			return
		}
		workbook, err := reports.BuildReportWorkbook(report)
		if err != nil {
			respondError(c, err)
			return
		}

		filename := "report-" + rangeType + "-" + time.Now().UTC().Format("20060102") + ".xlsx"
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := workbook.Write(c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}

func activitiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		results, err := models.GetActivities(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"activities": results})
	}
}

func payCommissionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeAdminOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commission id"})
			return
		}
		record, err := models.MarkCommissionPaid(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}
