package timetable

import (
	"context"

	"guems-backend/lib/scrapers/icloudems"
)

// PortalSessions opens real sessions against the university portal.
type PortalSessions struct {
	BaseUrl string
}

func (p PortalSessions) Login(ctx context.Context, admissionNumber, password string) (Session, error) {
	client, err := icloudems.NewClient(icloudems.ClientOptions{
		BaseUrl:         p.BaseUrl,
		AdmissionNumber: admissionNumber,
		Password:        password,
	})
	if err != nil {
		return nil, err
	}

	err = client.Login(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
