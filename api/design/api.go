package design

import (
	. "goa.design/goa/v3/dsl"
)

var _ = API("portfolio", func() {
	Title("Portfolio Inquiry API")
	Description("Contact inquiry intake for the photography portfolio site")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})
})

// Health check
var _ = Service("health", func() {
	Description("Health check service")
	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
		})
	})
})

var HealthResult = ResultType("HealthResult", func() {
	Attribute("status", String, "Service status", func() {
		Enum("healthy", "degraded")
		Example("healthy")
	})
	Attribute("service", String, "Service name", func() {
		Example("Portfolio Inquiry API")
	})
	Attribute("backend", String, "Content repository backend", func() {
		Example("sanity")
	})
})

// Inquiry service
var _ = Service("inquiry", func() {
	Description("Contact form inquiry intake")
	Error("bad_request", ErrorResult, "Required fields missing")
	Error("submission_failed", ErrorResult, "Inquiry could not be stored", func() {
		Fault()
	})

	Method("submit", func() {
		Description("Validate, record and acknowledge a contact form inquiry")
		Payload(InquirySubmitPayload)
		Result(InquirySubmitResult)
		HTTP(func() {
			POST("/api/contact")
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
			Response("submission_failed", StatusInternalServerError)
		})
	})
})

// Every field is checked by the service so that a missing field yields the
// form's own message rather than a per-attribute validation error.
var InquirySubmitPayload = Type("InquirySubmitPayload", func() {
	Attribute("name", String, "Submitter name", func() {
		Example("Jane")
	})
	Attribute("contactMethod", String, "Preferred contact method (email, call, text, whatsapp)", func() {
		Example("whatsapp")
	})
	Attribute("contactInfo", String, "Email address, phone number or handle", func() {
		Example("+256700000000")
	})
	Attribute("photoshootType", String, "Photoshoot type (fashion, commercial, portrait, other)", func() {
		Example("portrait")
	})
	Attribute("location", String, "Shoot location", func() {
		Example("Kampala")
	})
	Attribute("needServices", String, "Additional services needed (yes, no)", func() {
		Example("no")
	})
	Attribute("budget", String, "Budget", func() {
		Example("500 USD")
	})
	Attribute("message", String, "Detailed request", func() {
		Example("Need a 1-hour portrait session")
	})
})

var InquirySubmitResult = ResultType("InquirySubmitResult", func() {
	Attribute("success", Boolean, "Whether the inquiry was recorded")
	Attribute("message", String, "Confirmation message", func() {
		Example("Your inquiry has been submitted successfully!")
	})
	Attribute("id", String, "Content repository record ID")
	Required("success", "message", "id")
})
