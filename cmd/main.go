package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/notredoo/videogames-dw/app"
)

func main() {
	router := gin.Default()

	router.GET("/ping", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html", []byte("pong"))
	})

	router.POST("/run_etl", func(c *gin.Context) {
		application := app.NewETLWorker()
		application.Start()
		report := application.RunETL()
		application.Close()

		status := http.StatusOK
		if report.Failed() {
			status = http.StatusInternalServerError
		}
		c.JSON(status, report)
	})

	router.GET("/reports/total-revenue-by-genre", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		return w.TotalRevenueByGenre()
	}))

	router.GET("/reports/total-revenue-by-game-per-genre", func(c *gin.Context) {
		genre := c.Query("genre")
		if genre == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "genre parameter is required"})
			return
		}
		reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
			return w.TotalRevenueByGamePerGenre(genre)
		})(c)
	})

	router.GET("/reports/revenue-by-platform-and-year", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		var years []int
		for _, raw := range c.QueryArray("year") {
			year, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			years = append(years, year)
		}
		return w.RevenueByPlatformAndYear(years)
	}))

	router.GET("/reports/top-playtime-games", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		genre := c.DefaultQuery("genre", "ALL")
		platform := c.DefaultQuery("platform", "ALL")
		return w.TopPlaytimeGames(genre, platform)
	}))

	router.GET("/reports/esports-ecosystem", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		return w.EsportsEcosystem()
	}))

	router.GET("/reports/player-vs-team-earnings", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		return w.PlayerVsTeamEarnings()
	}))

	router.GET("/reports/available-years", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		return w.AvailableYears()
	}))

	router.GET("/reports/available-genres", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		return w.AvailableGenres()
	}))

	router.GET("/reports/available-genres-for-revenue", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		return w.AvailableGenresForRevenue()
	}))

	router.GET("/reports/available-platforms", reportHandler(func(w app.ReportWorker, c *gin.Context) (interface{}, error) {
		return w.AvailablePlatforms()
	}))

	router.GET("/export/:table", func(c *gin.Context) {
		table := c.Param("table")

		worker := app.NewReportWorker()
		worker.Start()
		defer worker.Close()

		// Build the CSV before touching the response, so a bad table name
		// or a query failure still goes out as a clean JSON error.
		var csv bytes.Buffer
		if err := worker.ExportTableCSV(&csv, table); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))
		c.Data(http.StatusOK, "text/csv", csv.Bytes())
	})

	if err := router.Run(); err != nil {
		panic(err)
	}
}

func reportHandler(load func(app.ReportWorker, *gin.Context) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		worker := app.NewReportWorker()
		worker.Start()
		defer worker.Close()

		data, err := load(worker, c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, data)
	}
}
