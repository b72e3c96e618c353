package icloudems

import "guems-backend/lib/telemetry"

var tracer = telemetry.Tracer("scraper/icloudems")
