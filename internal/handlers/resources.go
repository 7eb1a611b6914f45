package handlers

import "vibe-frontend/internal/grid"

// Grid schemas for the editable screens. Each declares its fields once and
// pins the per-resource policy for delete-flagging unsaved rows.
var (
	companySchema = grid.Schema{
		Resource: "companies",
		Fields: []grid.FieldSpec{
			{Name: "name", Kind: grid.KindString, Required: true},
			{Name: "biz_number", Kind: grid.KindString, Required: true},
			{Name: "ceo_name", Kind: grid.KindString},
			{Name: "address", Kind: grid.KindString},
			{Name: "active", Kind: grid.KindBool},
		},
		RemoveAddedOnDelete: true,
	}

	departmentSchema = grid.Schema{
		Resource: "departments",
		Fields: []grid.FieldSpec{
			{Name: "name", Kind: grid.KindString, Required: true},
			{Name: "parent_id", Kind: grid.KindNumber},
			{Name: "sort", Kind: grid.KindNumber},
		},
		RemoveAddedOnDelete: true,
	}

	employeeSchema = grid.Schema{
		Resource: "employees",
		Fields: []grid.FieldSpec{
			{Name: "name", Kind: grid.KindString, Required: true},
			{Name: "login_id", Kind: grid.KindString, Required: true},
			{Name: "password", Kind: grid.KindString, OmitIfEmpty: true},
			{Name: "email", Kind: grid.KindString},
			{Name: "dept_id", Kind: grid.KindNumber},
			{Name: "position", Kind: grid.KindString},
			{Name: "joined_at", Kind: grid.KindDate},
			{Name: "active", Kind: grid.KindBool},
		},
		RemoveAddedOnDelete: true,
	}

	payrollCodeSchema = grid.Schema{
		Resource: "payroll-codes",
		Fields: []grid.FieldSpec{
			{Name: "code", Kind: grid.KindString, Required: true},
			{Name: "name", Kind: grid.KindString, Required: true},
			{Name: "pay_type", Kind: grid.KindString, Required: true},
			{Name: "taxable", Kind: grid.KindBool},
			{Name: "sort", Kind: grid.KindNumber},
		},
		RemoveAddedOnDelete: true,
	}

	attendanceSchema = grid.Schema{
		Resource: "attendance",
		Fields: []grid.FieldSpec{
			{Name: "employee_id", Kind: grid.KindNumber, Required: true},
			{Name: "work_date", Kind: grid.KindDate, Required: true},
			{Name: "clock_in", Kind: grid.KindString},
			{Name: "clock_out", Kind: grid.KindString},
			{Name: "note", Kind: grid.KindString},
		},
		RemoveAddedOnDelete: true,
	}

	leaveRequestSchema = grid.Schema{
		Resource: "leave-requests",
		Fields: []grid.FieldSpec{
			{Name: "employee_id", Kind: grid.KindNumber, Required: true},
			{Name: "leave_type", Kind: grid.KindString, Required: true},
			{Name: "start_date", Kind: grid.KindDate, Required: true},
			{Name: "end_date", Kind: grid.KindDate, Required: true},
			{Name: "reason", Kind: grid.KindString},
		},
		RemoveAddedOnDelete: true,
	}

	courseSchema = grid.Schema{
		Resource: "courses",
		Fields: []grid.FieldSpec{
			{Name: "title", Kind: grid.KindString, Required: true},
			{Name: "provider", Kind: grid.KindString},
			{Name: "start_date", Kind: grid.KindDate},
			{Name: "end_date", Kind: grid.KindDate},
			{Name: "capacity", Kind: grid.KindNumber},
		},
		RemoveAddedOnDelete: true,
	}

	// Contract drafts are kept in the grid until save even when
	// delete-flagged, so a mis-click does not lose a half-entered contract.
	contractSchema = grid.Schema{
		Resource: "outsource-contracts",
		Fields: []grid.FieldSpec{
			{Name: "vendor", Kind: grid.KindString, Required: true},
			{Name: "contract_no", Kind: grid.KindString, Required: true},
			{Name: "start_date", Kind: grid.KindDate},
			{Name: "end_date", Kind: grid.KindDate},
			{Name: "amount", Kind: grid.KindNumber},
			{Name: "note", Kind: grid.KindString},
		},
		RemoveAddedOnDelete: false,
	}
)

// ProxyRoutes is the registry of browser-facing resource prefixes and their
// upstream counterparts. Routes without a schema are plain pass-throughs
// (read-only screens and action endpoints like request approve/reject).
func ProxyRoutes() []ProxyRoute {
	return []ProxyRoute{
		{LocalPrefix: "/api/mng/companies", UpstreamPrefix: "/api/v1/mng/companies", Schema: &companySchema},
		{LocalPrefix: "/api/mng/departments", UpstreamPrefix: "/api/v1/mng/departments", Schema: &departmentSchema},
		{LocalPrefix: "/api/hri/employees", UpstreamPrefix: "/api/v1/hri/employees", Schema: &employeeSchema},
		{LocalPrefix: "/api/hri/requests", UpstreamPrefix: "/api/v1/hri/requests"},
		{LocalPrefix: "/api/pay/payroll-codes", UpstreamPrefix: "/api/v1/pay/payroll-codes", Schema: &payrollCodeSchema},
		{LocalPrefix: "/api/tim/attendance", UpstreamPrefix: "/api/v1/tim/attendance", Schema: &attendanceSchema},
		{LocalPrefix: "/api/tim/leave-requests", UpstreamPrefix: "/api/v1/tim/leave-requests", Schema: &leaveRequestSchema},
		{LocalPrefix: "/api/edu/courses", UpstreamPrefix: "/api/v1/edu/courses", Schema: &courseSchema},
		{LocalPrefix: "/api/edu/enrollments", UpstreamPrefix: "/api/v1/edu/enrollments"},
		{LocalPrefix: "/api/out/contracts", UpstreamPrefix: "/api/v1/out/contracts", Schema: &contractSchema},
	}
}
