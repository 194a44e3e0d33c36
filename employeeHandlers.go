package main

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"bitbucket.org/mmdatafocus/bizmanager_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func employeeHomeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeEmployeeOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		home, err := reports.GetEmployeeHome(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, home)
	}
}

func listMySalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeEmployeeOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		results, err := models.GetSalesByEmployee(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sales": results})
	}
}

func createSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeEmployeeOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		var input models.NewDailySale
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, bindErrorPayload(err))
			return
		}
		sale, err := models.CreateDailySale(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

func listMyExpensesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeEmployeeOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		results, err := models.GetExpensesByEmployee(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"expenses": results})
	}
}

func createExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorizeEmployeeOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		var input models.NewExpense
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, bindErrorPayload(err))
			return
		}
		expense, err := models.CreateExpense(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, expense)
	}
}
