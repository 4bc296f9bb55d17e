package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/export"
	"github.com/trezcool/academia/core/report"
)

type reportApi struct {
	deps ServerDeps
	conf core.DashboardConfig
}

// Report endpoints answer JSON, or a downloadable file with ?format=csv|xlsx.
func registerReportAPI(g *echo.Group, deps ServerDeps) {
	api := reportApi{deps: deps, conf: deps.Conf.Dashboard}

	rg := g.Group("/reports")
	rg.GET("/summary", api.summary)
	rg.GET("/enrollments/by-course", api.enrollmentsByCourse)
	rg.GET("/enrollments/by-month", api.enrollmentsByMonth)
	rg.GET("/leaderboard", api.leaderboard)
	rg.GET("/popular-courses", api.popularCourses)
	rg.GET("/top-by-course", api.topByCourse)
	rg.GET("/recent-grades", api.recentGrades)
}

// respond writes data as JSON, or records as a file attachment named filename if a format was requested.
func respond(ctx echo.Context, data interface{}, filename string, records func() []export.Record) error {
	format, err := exportFormat(ctx)
	if err != nil {
		return err
	}
	if format == "" {
		return ctx.JSON(http.StatusOK, data)
	}

	body, err := export.Encode(records(), format)
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename+"."+format))
	return ctx.Blob(http.StatusOK, export.ContentType(format), body)
}

func (api *reportApi) summary(ctx echo.Context) error {
	var req LimitRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to LimitRequest")
	}
	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, true)
	if err != nil {
		return err
	}
	sum := report.NewSummary(snap.Students, snap.Courses, snap.Faculty, snap.Grades, report.SummarySizes{
		TopStudents:    req.Or(api.conf.TopStudents),
		PopularCourses: req.Or(api.conf.TopCourses),
		RecentGrades:   api.conf.RecentGrades,
	})
	return ctx.JSON(http.StatusOK, sum)
}

func (api *reportApi) enrollmentsByCourse(ctx echo.Context) error {
	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, false)
	if err != nil {
		return err
	}
	ces := report.CourseEnrollments(snap.Courses, report.EnrollmentByCourse(snap.Grades))
	return respond(ctx, ces, report.EnrollmentsReportFile, func() []export.Record {
		return report.CourseEnrollmentRecords(ces)
	})
}

func (api *reportApi) enrollmentsByMonth(ctx echo.Context) error {
	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, false)
	if err != nil {
		return err
	}
	months := report.EnrollmentByMonth(snap.Grades)
	return respond(ctx, months, report.EnrollmentsReportFile, func() []export.Record {
		return report.MonthRecords(months)
	})
}

func (api *reportApi) leaderboard(ctx echo.Context) error {
	var req LimitRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to LimitRequest")
	}
	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, false)
	if err != nil {
		return err
	}
	top := report.TopStudents(snap.Students, snap.Grades, req.Or(api.conf.ReportLeaderboard))
	return respond(ctx, top, report.LeaderboardReportFile, func() []export.Record {
		return report.StandingRecords(top)
	})
}

func (api *reportApi) popularCourses(ctx echo.Context) error {
	var req LimitRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to LimitRequest")
	}
	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, false)
	if err != nil {
		return err
	}
	popular := report.PopularCourses(snap.Courses, snap.Grades, req.Or(api.conf.TopCourses))
	return respond(ctx, popular, report.PopularCoursesFile, func() []export.Record {
		return report.CourseEnrollmentRecords(popular)
	})
}

func (api *reportApi) topByCourse(ctx echo.Context) error {
	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, false)
	if err != nil {
		return err
	}
	tops := report.TopStudentByCourse(snap.Courses, snap.Students, snap.Grades)
	return respond(ctx, tops, report.TopStudentsReportFile, func() []export.Record {
		return report.TopStudentRecords(tops)
	})
}

func (api *reportApi) recentGrades(ctx echo.Context) error {
	var req LimitRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to LimitRequest")
	}
	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, false)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report.RecentGrades(snap.Grades, req.Or(api.conf.RecentGrades)))
}
