package icloudems

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"

	"guems-backend/lib/telemetry"
)

var ErrInvalidCredentials = errors.New("incorrect admission number or password")
var ErrNotLoggedIn = errors.New("you must login first")

// PageTarget is the portal page a session is opened against.
type PageTarget string

const (
	PageTimetable PageTarget = "schedulerand/tt_report_view.php"
	PageProfile   PageTarget = "student_profile/index.php"
)

type ClientOptions struct {
	BaseUrl         string
	AdmissionNumber string
	Password        string
}

// Client is a logged-out portal session. Login must succeed before any
// page source can be downloaded.
type Client struct {
	BaseUrl *url.URL
	http    *resty.Client

	admissionNumber string
	password        string
	loggedIn        bool
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetTimeout(time.Second * 30)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	telemetry.InstrumentResty(client, "icloudems-http")

	return &Client{
		BaseUrl:         baseUrl,
		http:            client,
		admissionNumber: opts.AdmissionNumber,
		password:        opts.Password,
	}, nil
}

// Login fetches the login form, replays its hidden fields together with
// the credentials and verifies the portal let us through.
func (c *Client) Login(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get("corecampus/index.php")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return fmt.Errorf("fetch login page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page")
		return fmt.Errorf("parse login page: %w", err)
	}

	values := url.Values{}
	doc.Find("form input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok {
			return
		}
		values.Set(name, input.AttrOr("value", ""))
	})
	values.Set("useriid", c.admissionNumber)
	values.Set("passwrd", c.password)

	res, err = c.http.R().
		SetContext(ctx).
		SetBody(values.Encode()).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		Post("corecampus/student/validation.php")
	if err != nil {
		span.SetStatus(codes.Error, "failed to post login")
		return fmt.Errorf("post login: %w", err)
	}

	body := res.String()
	if strings.Contains(body, "Invalid") || strings.Contains(body, "invalid") {
		span.SetStatus(codes.Error, ErrInvalidCredentials.Error())
		return ErrInvalidCredentials
	}

	c.loggedIn = true
	return nil
}

// DownloadPageSource fetches the markup of the given portal page. It
// fails if called before a successful Login.
func (c *Client) DownloadPageSource(ctx context.Context, target PageTarget) (string, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadPageSource")
	defer span.End()

	if !c.loggedIn {
		span.SetStatus(codes.Error, ErrNotLoggedIn.Error())
		return "", ErrNotLoggedIn
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(string(target))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch page")
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return "", fmt.Errorf("fetch %s: %s", target, res.Status())
	}

	return res.String(), nil
}

func (c *Client) Close() error {
	c.loggedIn = false
	c.http.GetClient().CloseIdleConnections()
	return nil
}
