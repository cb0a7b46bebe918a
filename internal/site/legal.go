package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type legalPage struct {
	Title string
	Body  string
}

var legalDocs = map[string]legalPage{
	"privacy": {
		Title: "Privacy Policy",
		Body:  "At Red Wire AI, we prioritize your data security. We collect only the information necessary to provide our AI services and sync with your GoHighLevel account. We do not sell your personal data to third parties. All voice and text logs are encrypted at rest and in transit.",
	},
	"terms": {
		Title: "Terms of Service",
		Body:  "By using Red Wire AI, you agree to our usage guidelines. AI responses are generated based on your provided knowledge base. We are not responsible for the specific content generated but provide tools to moderate it. Subscriptions are billed monthly in advance.",
	},
	"affiliate-terms": {
		Title: "Affiliate Agreement",
		Body:  "Affiliates earn 45% recurring commission on active subscriptions. Payments are made monthly after a 30-day clearing period. Self-referrals are strictly prohibited. We reserve the right to pause accounts that violate our anti-spam policies.",
	},
	"cookie": {
		Title: "Cookie Policy",
		Body:  "We use essential cookies to manage your login session and affiliate tracking cookies (90-day duration). These are necessary for the core functionality of the Red Wire ecosystem.",
	},
}

// disclaimer is shown for any unrecognised legal type.
var disclaimer = legalPage{
	Title: "Disclaimer",
	Body:  "AI technology is rapidly evolving. While we strive for 100% accuracy, Red Wire AI is a tool to assist your business processes and should be reviewed regularly by human operators.",
}

func (s *Site) handleLegal(w http.ResponseWriter, r *http.Request) {
	doc, ok := legalDocs[chi.URLParam(r, "type")]
	if !ok {
		doc = disclaimer
	}
	s.render(w, http.StatusOK, "legal", s.newPage(r, doc.Title, doc))
}
