package timetable

import "guems-backend/lib/telemetry"

var tracer = telemetry.Tracer("guems.services.timetable")
