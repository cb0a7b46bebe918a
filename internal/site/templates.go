package site

// layoutTemplate wraps every public page. Pages define "content".
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.Settings.SiteName}}</title>
  {{with .Description}}<meta name="description" content="{{.}}">{{end}}
  <style>` + styleSheet + `</style>
</head>
<body>
  {{if .Admin}}
  <div class="admin-bar">
    <span>Admin mode</span>
    <a href="{{.AdminPath}}">Open console</a>
    <form method="post" action="{{.AdminPath}}/exit"><button type="submit">Exit</button></form>
  </div>
  {{end}}
  <nav class="nav">
    <div class="container nav-inner">
      <a class="logo" href="/">
        {{if .Settings.LogoImageURL}}<img src="{{url .Settings.LogoImageURL}}" alt="{{.Settings.SiteName}}">{{else}}<span>{{.Settings.SiteName}}</span>{{end}}
      </a>
      <div class="nav-links">
        <a href="/#products">Products</a>
        <a href="/pricing">Pricing</a>
        <a href="/blog">Blog</a>
        <a href="/affiliate">Affiliates</a>
        <a href="/contact">Contact</a>
        <a href="/login">Login</a>
        <a class="btn btn-small" style="{{buttonStyle .Settings}}" href="{{.StartURL}}">Get Started</a>
      </div>
    </div>
  </nav>
  {{with .Flash}}<div class="container"><div class="flash">{{.}}</div></div>{{end}}
  <main>{{template "content" .}}</main>
  <div id="toasts" class="toasts" aria-live="polite"></div>
  <footer class="footer">
    <div class="container footer-inner">
      <div>
        <strong>{{.Settings.SiteName}}</strong>
        <p class="muted">Human like automations for small business.</p>
      </div>
      <div class="footer-links">
        <a href="/legal/privacy">Privacy</a>
        <a href="/legal/terms">Terms</a>
        <a href="/legal/affiliate-terms">Affiliate Agreement</a>
        <a href="/legal/cookie">Cookies</a>
        <a href="/legal/disclaimer">Disclaimer</a>
      </div>
      <p class="muted">&copy; {{.Year}} {{.Settings.SiteName}}. All rights reserved.</p>
    </div>
  </footer>
  <script>` + toastScript + `</script>
</body>
</html>{{end}}`

const homeTemplate = `{{define "content"}}
<section class="hero">
  <div class="container split">
    <div>
      <h1>{{first .Settings.HeroHeading}} <span class="accent">{{last .Settings.HeroHeading}}</span></h1>
      <p class="lead">{{.Settings.HeroSubheading}}</p>
      <a class="btn" style="{{buttonStyle .Settings}}" href="{{.Settings.HeroButtonLink}}">{{.Settings.HeroButtonText}}</a>
    </div>
    <div class="media">{{with .Settings.HeroImageURL}}<img src="{{url .}}" alt="">{{end}}</div>
  </div>
</section>

<section id="products" class="section">
  <div class="container">
    <div class="section-head">
      <h2>{{first .Settings.ProductsHeading}} <span class="accent">{{last .Settings.ProductsHeading}}</span></h2>
      <p class="muted">{{.Settings.ProductsSubheading}}</p>
    </div>
    <div class="grid">
      {{range .Products}}
      <a class="card" href="/product/{{.ID.Slug}}">
        <h3>{{.Name}}</h3>
        <p class="muted">{{.Description}}</p>
        <p class="price">${{money .MonthlyPrice}}<span>/mo</span></p>
      </a>
      {{end}}
    </div>
  </div>
</section>

<section class="section">
  <div class="container">
    <div class="section-head">
      <h2>{{first .Settings.HowItWorksHeading}} <span class="accent">{{last .Settings.HowItWorksHeading}}</span></h2>
      <p class="muted">{{.Settings.HowItWorksSubheading}}</p>
    </div>
    <div class="grid">
      <div class="card"><span class="step">1</span><h3>Select Plan</h3><p class="muted">Choose the bundle that fits your needs.</p></div>
      <div class="card"><span class="step">2</span><h3>Setup Integration</h3><p class="muted">Connect in days not Weeks.</p></div>
      <div class="card"><span class="step">3</span><h3>Launch</h3><p class="muted">Deploy your AI agents to live channels.</p></div>
      <div class="card"><span class="step">4</span><h3>Growth</h3><p class="muted">Automation runs 24/7, scaling your leads.</p></div>
    </div>
  </div>
</section>

<section class="section band">
  <div class="container split">
    <div>
      <h2>{{first .Settings.WhyChooseUsHeading}} <span class="accent">{{last .Settings.WhyChooseUsHeading}}</span></h2>
      <ul class="checks">
        <li><strong>Zero Missed Leads</strong><span class="muted">Our AI captures every opportunity 24/7/365, ensuring your pipeline is always full.</span></li>
        <li><strong>Consistent Experience</strong><span class="muted">Deliver the perfect pitch and support response every single time.</span></li>
        <li><strong>Scalable Growth</strong><span class="muted">Handle 10 or 10,000 visitors simultaneously without hiring more staff.</span></li>
        <li><strong>Data Driven</strong><span class="muted">Get deep insights and analytics into customer behavior and conversation sentiment.</span></li>
      </ul>
      <a class="btn" style="{{buttonStyle .Settings}}" href="{{.Settings.WhyChooseUsButtonLink}}">{{.Settings.WhyChooseUsButtonText}}</a>
    </div>
    <div class="media">{{with .Settings.WhyChooseUsImageURL}}<img src="{{url .}}" alt="">{{end}}</div>
  </div>
</section>
{{end}}`

const pricingTemplate = `{{define "content"}}
<section class="section">
  <div class="container">
    <div class="section-head">
      <h1>{{first .Settings.PricingHeading}} <span class="accent">{{last .Settings.PricingHeading}}</span></h1>
      <p class="muted">{{.Settings.PricingSubheading}}</p>
    </div>
    <div class="grid">
      {{range .Products}}
      <div class="card plan">
        <h3>{{.Name}}</h3>
        <p class="price">${{money .MonthlyPrice}}<span>/mo</span></p>
        <p class="muted">${{money .SetupFee}} one-time setup</p>
        <ul class="features">{{range .Features}}<li>{{.}}</li>{{end}}</ul>
        <a class="btn" style="{{buttonStyle $.Settings}}" href="/checkout?plan={{.ID}}">Get Started</a>
      </div>
      {{end}}
    </div>
  </div>
</section>
{{end}}`

const productTemplate = `{{define "content"}}
{{with .Page}}
<section class="section">
  <div class="container split">
    <div>
      <a class="muted" href="/pricing">&larr; All plans</a>
      <h1>{{.Name}}</h1>
      <p class="lead">{{.Description}}</p>
      <p class="price">${{money .MonthlyPrice}}<span>/mo</span> <small class="muted">+ ${{money .SetupFee}} setup</small></p>
      <ul class="features">{{range .Features}}<li>{{.}}</li>{{end}}</ul>
      <a class="btn" style="{{buttonStyle $.Settings}}" href="/checkout?plan={{.ID}}">Start with {{.Name}}</a>
    </div>
    <div class="media">{{with .ImageURL}}<img src="{{url .}}" alt="">{{end}}</div>
  </div>
</section>
{{end}}
{{end}}`

const checkoutTemplate = `{{define "content"}}
{{$f := .Page.Form}}
<section class="section">
  <div class="container split">
    <div class="card">
      <a class="muted" href="/pricing">&larr; Back to plans</a>
      {{with .Page.Plan}}
      <h2>{{.Name}}</h2>
      <p class="muted">{{.Description}}</p>
      <ul class="features">{{range .Features}}<li>{{.}}</li>{{end}}</ul>
      <dl class="totals">
        <dt>Monthly</dt><dd>${{money .MonthlyPrice}}</dd>
        <dt>Setup fee</dt><dd>${{money .SetupFee}}</dd>
        <dt>Due today</dt><dd class="accent">${{money (add .MonthlyPrice .SetupFee)}}</dd>
      </dl>
      {{end}}
    </div>
    <form class="card form" method="post" action="/checkout?plan={{.Page.Plan.ID}}">
      <h2>Secure Checkout</h2>
      <div class="row">
        <label>First Name<input name="firstName" value="{{$f.Value "firstName"}}" required>{{with $f.Error "firstName"}}<span class="error">{{.}}</span>{{end}}</label>
        <label>Last Name<input name="lastName" value="{{$f.Value "lastName"}}" required>{{with $f.Error "lastName"}}<span class="error">{{.}}</span>{{end}}</label>
      </div>
      <div class="row">
        <label>Company Name<input name="companyName" value="{{$f.Value "companyName"}}" required>{{with $f.Error "companyName"}}<span class="error">{{.}}</span>{{end}}</label>
        <label>Industry<input name="industry" placeholder="e.g. Real Estate, SaaS" value="{{$f.Value "industry"}}" required>{{with $f.Error "industry"}}<span class="error">{{.}}</span>{{end}}</label>
      </div>
      <label>Email Address<input type="email" name="email" value="{{$f.Value "email"}}" required>{{with $f.Error "email"}}<span class="error">{{.}}</span>{{end}}</label>
      <label>Card Information<input name="cardNumber" placeholder="Card number" value="{{$f.Value "cardNumber"}}" required>{{with $f.Error "cardNumber"}}<span class="error">{{.}}</span>{{end}}</label>
      <div class="row">
        <label>Expiry<input name="expiry" placeholder="MM/YY" value="{{$f.Value "expiry"}}" required>{{with $f.Error "expiry"}}<span class="error">{{.}}</span>{{end}}</label>
        <label>CVC<input name="cvc" placeholder="CVC" value="{{$f.Value "cvc"}}" required>{{with $f.Error "cvc"}}<span class="error">{{.}}</span>{{end}}</label>
      </div>
      <label>Billing Country<input name="country" value="{{$f.Value "country"}}" required>{{with $f.Error "country"}}<span class="error">{{.}}</span>{{end}}</label>
      <button class="btn" style="{{buttonStyle .Settings}}" type="submit">Pay ${{money (add .Page.Plan.MonthlyPrice .Page.Plan.SetupFee)}}</button>
      <p class="muted small">Payments are simulated. No card is charged.</p>
    </form>
  </div>
</section>
{{end}}`

const onboardingTemplate = `{{define "content"}}
{{with .Page}}
<section class="section">
  <div class="container narrow">
    <ol class="steps">
      <li class="{{if ge .Step 1}}done{{end}}">Welcome</li>
      <li class="{{if ge .Step 2}}done{{end}}">Business Info</li>
      <li class="{{if ge .Step 3}}done{{end}}">AI Preferences</li>
      <li class="{{if ge .Step 4}}done{{end}}">System Sync</li>
    </ol>
    <div class="card">
    {{if eq .Step 1}}
      <h2>Welcome to {{$.Settings.SiteName}}!</h2>
      <p class="muted">You've successfully subscribed. We're ready to build your automation ecosystem.</p>
      <p class="muted">Over the next 3 minutes, we'll collect the key details needed to sync your new platform with GoHighLevel and configure your AI agents.</p>
      <a class="btn" style="{{buttonStyle $.Settings}}" href="/onboarding?step=2&business={{.BusinessName}}&industry={{.Industry}}">Continue</a>
    {{else if eq .Step 2}}
      <h2>Business Essentials</h2>
      <form class="form" method="post" action="/onboarding">
        <label>Business Name<input name="businessName" value="{{.BusinessName}}" required></label>
        <label>Website<input name="website" value="{{.Website}}"></label>
        <label>Industry<input name="industry" value="{{.Industry}}"></label>
        <button class="btn" style="{{buttonStyle $.Settings}}" type="submit">Continue</button>
      </form>
    {{else if eq .Step 3}}
      <h2>AI Preferences</h2>
      <h3>Your automation strategy</h3>
      <div class="prose">{{.Strategy}}</div>
      <h3>Suggested first questions</h3>
      <ul class="features">{{range .Questions}}<li>{{.}}</li>{{end}}</ul>
      <a class="btn" style="{{buttonStyle $.Settings}}" href="/onboarding?step=4">Continue</a>
    {{else}}
      <h2>System Sync</h2>
      <p class="muted">Your workspace is being provisioned. Our team will reach out within 24 hours.</p>
      <a class="btn" style="{{buttonStyle $.Settings}}" href="/">Back to site</a>
    {{end}}
    </div>
  </div>
</section>
{{end}}
{{end}}`

const loginTemplate = `{{define "content"}}
<section class="section">
  <div class="container narrow">
    <form class="card form" method="post" action="/login">
      <h2>Welcome Back</h2>
      <label>Email<input type="email" name="email" placeholder="name@company.com" required></label>
      <label>Password<input type="password" name="password" required></label>
      <button class="btn" style="{{buttonStyle .Settings}}" type="submit">Sign In</button>
    </form>
  </div>
</section>
{{end}}`

const affiliateTemplate = `{{define "content"}}
<section class="section">
  <div class="container narrow center">
    <span class="badge">Earn {{percent .Page.Commission}} Recurring for Life</span>
    <h1>{{first .Settings.AffiliateHeading}} <span class="accent">{{last .Settings.AffiliateHeading}}</span></h1>
    <p class="lead">{{.Settings.AffiliateSubheading}}</p>
    <div class="grid">
      <div class="card"><h3>{{percent .Page.Commission}} commission</h3><p class="muted">Paid monthly on every active subscription you refer.</p></div>
      <div class="card"><h3>90-day cookie</h3><p class="muted">Get credit for referrals long after the first click.</p></div>
      <div class="card"><h3>Partner support</h3><p class="muted">Sales assets and a dedicated partner manager.</p></div>
    </div>
    <form method="post" action="/affiliate">
      <button class="btn" style="{{buttonStyle .Settings}}" type="submit">Apply Now</button>
    </form>
    <p class="muted small">See the <a href="/legal/affiliate-terms">affiliate agreement</a>.</p>
  </div>
</section>
{{end}}`

const contactTemplate = `{{define "content"}}
{{$f := .Page.Form}}
<section class="section">
  <div class="container split">
    <div>
      <h1>{{first .Settings.ContactHeading}} <span class="accent">{{last .Settings.ContactHeading}}</span></h1>
      <p class="lead">{{.Settings.ContactSubheading}}</p>
    </div>
    <form class="card form" method="post" action="/contact">
      <label>Full Name<input name="name" value="{{$f.Value "name"}}" required>{{with $f.Error "name"}}<span class="error">{{.}}</span>{{end}}</label>
      <label>Email Address<input type="email" name="email" value="{{$f.Value "email"}}" required>{{with $f.Error "email"}}<span class="error">{{.}}</span>{{end}}</label>
      <label>Message<textarea name="message" rows="5" placeholder="Tell us about your business...">{{$f.Value "message"}}</textarea>{{with $f.Error "message"}}<span class="error">{{.}}</span>{{end}}</label>
      <button class="btn" style="{{buttonStyle .Settings}}" type="submit">Send Message</button>
    </form>
  </div>
</section>
{{end}}`

const legalTemplate = `{{define "content"}}
{{with .Page}}
<section class="section">
  <div class="container narrow card prose">
    <h1>{{.Title}}</h1>
    <p class="muted">Last Updated: October 2024</p>
    <p>{{.Body}}</p>
    <h3>1. Acceptance of Terms</h3>
    <p>By accessing or using the {{$.Settings.SiteName}} platform, you acknowledge that you have read, understood, and agree to be bound by these provisions.</p>
    <h3>2. Intellectual Property</h3>
    <p>All software, proprietary algorithms, and brand assets remain the sole property of {{$.Settings.SiteName}}. Clients retain ownership of their specific business data uploaded to the system.</p>
    <h3>3. Termination</h3>
    <p>Users may cancel their subscriptions at any time through the Stripe billing portal. Upon cancellation, access to AI agents will cease at the end of the current billing cycle.</p>
  </div>
</section>
{{end}}
{{end}}`

const blogTemplate = `{{define "content"}}
<section class="section">
  <div class="container">
    <div class="section-head">
      <h1>Automation <span class="accent">Insights</span></h1>
      <p class="muted">Strategies, playbooks and news from the {{.Settings.SiteName}} team.</p>
    </div>
    <div class="grid">
      {{range .Page.Posts}}
      <a class="card post" href="/blog/{{.ID}}">
        {{with .Img}}<img src="{{url .}}" alt="">{{end}}
        <p class="muted small">{{.Date}}{{with .ReadTime}} &middot; {{.}}{{end}}{{if eq .Status "draft"}} &middot; <span class="badge">Draft</span>{{end}}</p>
        <h3>{{.Title}}</h3>
        <p class="muted">{{.Excerpt}}</p>
      </a>
      {{else}}
      <p class="muted">No articles yet.</p>
      {{end}}
    </div>
  </div>
</section>
{{end}}`

const postTemplate = `{{define "content"}}
{{with .Page}}
<article class="section">
  <div class="container narrow prose">
    <a class="muted" href="/blog">&larr; All articles</a>
    <h1>{{.Post.Title}}</h1>
    <p class="muted small">{{.Post.Date}}{{with .Post.ReadTime}} &middot; {{.}}{{end}}</p>
    {{with .Post.Img}}<img class="cover" src="{{url .}}" alt="">{{end}}
    {{.Body}}
    {{with .Post.Keywords}}<p class="tags">{{range .}}<span class="badge">{{.}}</span> {{end}}</p>{{end}}
  </div>
</article>
{{end}}
{{end}}`

const styleSheet = `
:root { --bg: #020617; --panel: #0f172a; --border: #1e293b; --text: #f1f5f9; --muted: #94a3b8; --accent: #ef4444; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; background: var(--bg); color: var(--text); line-height: 1.6; }
a { color: inherit; }
img { max-width: 100%; display: block; border-radius: 24px; }
.container { max-width: 1180px; margin: 0 auto; padding: 0 24px; }
.narrow { max-width: 760px; }
.center { text-align: center; }
.nav { position: sticky; top: 0; z-index: 50; background: rgba(2, 6, 23, .85); backdrop-filter: blur(12px); border-bottom: 1px solid var(--border); }
.nav-inner { display: flex; align-items: center; justify-content: space-between; height: 72px; }
.logo { font-weight: 800; font-size: 1.25rem; text-decoration: none; }
.logo img { height: 40px; border-radius: 8px; }
.nav-links { display: flex; gap: 20px; align-items: center; }
.nav-links a { text-decoration: none; color: var(--muted); }
.admin-bar { display: flex; gap: 16px; align-items: center; justify-content: center; padding: 6px; background: #7f1d1d; font-size: .85rem; }
.admin-bar form { margin: 0; }
.btn { display: inline-block; padding: 14px 28px; border-radius: 14px; border: 0; font-weight: 700; text-decoration: none; cursor: pointer; background: #dc2626; color: #fff; }
.btn-small { padding: 8px 16px; color: #fff !important; }
.hero { padding: 96px 0 64px; }
h1 { font-size: clamp(2.25rem, 5vw, 4rem); line-height: 1.1; margin: 0 0 24px; }
h2 { font-size: clamp(1.75rem, 3vw, 2.75rem); margin: 0 0 16px; }
.accent { color: var(--accent); }
.lead { font-size: 1.2rem; color: var(--muted); margin-bottom: 32px; }
.muted { color: var(--muted); }
.small { font-size: .85rem; }
.section { padding: 80px 0; }
.band { background: rgba(15, 23, 42, .4); border-block: 1px solid var(--border); }
.section-head { text-align: center; margin-bottom: 48px; }
.split { display: grid; grid-template-columns: repeat(auto-fit, minmax(320px, 1fr)); gap: 48px; align-items: center; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 24px; }
.card { display: block; background: var(--panel); border: 1px solid var(--border); border-radius: 28px; padding: 28px; text-decoration: none; }
.price { font-size: 2rem; font-weight: 800; margin: 8px 0; }
.price span { font-size: 1rem; color: var(--muted); }
.features { padding-left: 20px; color: var(--muted); }
.checks { list-style: none; padding: 0; display: grid; gap: 20px; margin-bottom: 32px; }
.checks li { display: grid; }
.step { display: inline-flex; width: 36px; height: 36px; align-items: center; justify-content: center; border-radius: 50%; background: rgba(220, 38, 38, .15); color: var(--accent); font-weight: 800; }
.form { display: grid; gap: 16px; }
.form label { display: grid; gap: 6px; font-size: .75rem; text-transform: uppercase; letter-spacing: .08em; color: var(--muted); }
.form .row { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
input, textarea { width: 100%; padding: 14px 16px; background: var(--bg); border: 1px solid var(--border); border-radius: 12px; color: var(--text); font: inherit; text-transform: none; letter-spacing: normal; }
.error { color: var(--accent); text-transform: none; letter-spacing: normal; }
.flash { margin-top: 24px; padding: 16px 20px; border-radius: 16px; background: rgba(34, 197, 94, .1); border: 1px solid rgba(34, 197, 94, .3); }
.totals { display: grid; grid-template-columns: 1fr auto; gap: 8px; }
.totals dd { margin: 0; font-weight: 700; }
.badge { display: inline-block; padding: 4px 12px; border-radius: 999px; background: rgba(220, 38, 38, .12); color: var(--accent); font-size: .75rem; font-weight: 700; }
.steps { display: flex; justify-content: space-between; list-style: none; padding: 0; color: var(--muted); }
.steps .done { color: var(--accent); }
.prose h2, .prose h3 { margin-top: 32px; }
.cover { margin: 24px 0; }
.post img { margin-bottom: 16px; }
.footer { border-top: 1px solid var(--border); padding: 48px 0; margin-top: 48px; }
.footer-inner { display: grid; gap: 16px; }
.footer-links { display: flex; flex-wrap: wrap; gap: 16px; }
.footer-links a { color: var(--muted); text-decoration: none; }
.toasts { position: fixed; top: 96px; right: 24px; z-index: 200; display: grid; gap: 12px; pointer-events: none; }
.toast { width: 320px; padding: 16px; border-radius: 16px; background: var(--panel); border: 1px solid rgba(239, 68, 68, .3); box-shadow: 0 20px 40px rgba(0, 0, 0, .4); pointer-events: auto; }
.toast.sale { border-color: rgba(34, 197, 94, .5); }
.toast.affiliate { border-color: rgba(59, 130, 246, .5); }
@media (max-width: 720px) { .nav-links a:not(.btn) { display: none; } .form .row { grid-template-columns: 1fr; } }
`

// toastScript renders the notification feed streamed over the socket.
const toastScript = `
(function () {
  var box = document.getElementById("toasts");
  if (!box || !window.WebSocket) return;
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  function add(n) {
    if (document.getElementById("toast-" + n.id)) return;
    var el = document.createElement("div");
    el.id = "toast-" + n.id;
    el.className = "toast " + n.type;
    el.textContent = n.message;
    box.appendChild(el);
  }
  function remove(n) {
    var el = document.getElementById("toast-" + n.id);
    if (el) el.remove();
  }
  function connect(delay) {
    var ws = new WebSocket(scheme + location.host + "/ws/notifications");
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "snapshot") {
        box.textContent = "";
        (msg.notifications || []).forEach(add);
      } else if (msg.type === "added") {
        add(msg.notification);
      } else if (msg.type === "expired") {
        remove(msg.notification);
      }
    };
    ws.onclose = function () { setTimeout(function () { connect(Math.min(delay * 2, 10000)); }, delay); };
  }
  connect(1000);
})();
`
