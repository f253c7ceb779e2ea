package sitegen

import (
	"fmt"

	"github.com/artlife/sitegen/internal/config"
)

// placeholderImages are generated into assets/img so fresh sites
// render without any media uploaded.
var placeholderImages = map[string]string{
	"placeholder-hero.svg":     "Warm abstract hero placeholder",
	"placeholder-studio.svg":   "Studio placeholder",
	"placeholder-lab.svg":      "Lab placeholder",
	"placeholder-portrait.svg": "Portrait placeholder",
	"placeholder-grid.svg":     "Project grid placeholder",
}

// BuildCSS generates the site stylesheet from the configured theme
// tokens.
func BuildCSS(theme config.Theme) string {
	return fmt.Sprintf(`:root {
  --primary: %s;
  --primary-dark: %s;
  --primary-bright: %s;
  --background: %s;
  --paper: %s;
  --accent: %s;
  --text-main: %s;
  --text-muted: %s;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: "Georgia", "Times New Roman", serif;
  background: var(--background);
  color: var(--text-main);
  line-height: 1.6;
}

a { color: var(--primary); }
a:hover { color: var(--primary-bright); }

.sr-only {
  position: absolute;
  width: 1px;
  height: 1px;
  overflow: hidden;
  clip: rect(0 0 0 0);
}

.page-shell {
  max-width: 1100px;
  margin: 0 auto;
  padding: 0 1.5rem;
}

.site-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  gap: 1rem;
  padding: 1.25rem 0;
  border-bottom: 1px solid rgba(0, 0, 0, 0.08);
}

.logo {
  font-weight: bold;
  font-size: 1.3rem;
  text-decoration: none;
  color: var(--primary-dark);
}

.nav { display: flex; gap: 1rem; flex-wrap: wrap; }
.nav a { text-decoration: none; color: var(--text-main); }
.nav a.active { color: var(--primary); border-bottom: 2px solid var(--accent); }

.cta, .button {
  display: inline-block;
  background: var(--primary);
  color: var(--paper);
  padding: 0.55rem 1.2rem;
  border-radius: 999px;
  border: none;
  text-decoration: none;
  font-size: 1rem;
  cursor: pointer;
}
.cta:hover, .button:hover { background: var(--primary-bright); color: var(--paper); }
.button.ghost {
  background: transparent;
  color: var(--primary);
  border: 1px solid var(--primary);
}

.hero { padding: 3.5rem 0 2.5rem; position: relative; }
.hero-inner {
  display: grid;
  grid-template-columns: 3fr 2fr;
  gap: 2.5rem;
  align-items: center;
}
.hero-orbit {
  position: absolute;
  inset: 0;
  background: radial-gradient(circle at 80%% 10%%, var(--accent) 0, transparent 35%%);
  opacity: 0.25;
  pointer-events: none;
}
.eyebrow {
  text-transform: uppercase;
  letter-spacing: 0.14em;
  font-size: 0.8rem;
  color: var(--primary);
}
.subtitle { color: var(--text-muted); font-size: 1.1rem; }
.hero-actions { margin-top: 1.25rem; }
.hero-art {
  background: var(--paper);
  border-radius: 18px;
  padding: 1.25rem;
  box-shadow: 0 18px 40px rgba(0, 0, 0, 0.08);
}

.image-frame { margin: 0; }
.image-frame img { width: 100%%; border-radius: 12px; display: block; }

.card-grid, .post-grid, .digest-grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
  gap: 1.25rem;
  margin: 2rem 0;
}
.card, .post-card, .digest-card {
  background: var(--paper);
  border-radius: 14px;
  padding: 1.25rem;
  text-decoration: none;
  color: inherit;
  box-shadow: 0 10px 24px rgba(0, 0, 0, 0.06);
}
.post-date { color: var(--text-muted); font-size: 0.85rem; }

.content-section { padding: 2.5rem 0; }
.content-grid {
  display: grid;
  grid-template-columns: 3fr 2fr;
  gap: 2.5rem;
  align-items: start;
}
.content-section.width-split .content-grid { grid-template-columns: 1fr 1fr; }
.content-section.style-paper .section-body {
  background: var(--paper);
  border-radius: 14px;
  padding: 1.5rem;
}
.content-section.style-terminal .section-body {
  background: var(--primary-dark);
  color: var(--paper);
  border-radius: 14px;
  padding: 1.5rem;
  font-family: "Courier New", monospace;
}

.publications-section ul { list-style: none; padding-left: 0; }
.publications-section li {
  padding: 0.6rem 0;
  border-bottom: 1px solid rgba(0, 0, 0, 0.08);
}

.page-hero {
  padding: 3rem 0 1.5rem;
  border-bottom: 1px solid rgba(0, 0, 0, 0.08);
}
.page-body { padding: 2rem 0; }
.content-block { max-width: 760px; }

blockquote {
  margin: 1.25rem 0;
  padding: 0.75rem 1.25rem;
  border-left: 4px solid var(--accent);
  background: var(--paper);
}
pre {
  background: var(--primary-dark);
  color: var(--paper);
  padding: 1rem;
  border-radius: 10px;
  overflow-x: auto;
}
code { font-family: "Courier New", monospace; }
hr { border: none; border-top: 1px solid rgba(0, 0, 0, 0.15); margin: 2rem 0; }

.newsletter {
  display: grid;
  grid-template-columns: 1fr 1fr;
  gap: 1.5rem;
  background: var(--paper);
  border-radius: 14px;
  padding: 1.5rem;
  margin: 2rem 0;
}
.newsletter-form input[type="email"] {
  width: 100%%;
  padding: 0.6rem 0.8rem;
  border: 1px solid rgba(0, 0, 0, 0.2);
  border-radius: 8px;
  margin-bottom: 0.75rem;
}

.contact-card {
  background: var(--paper);
  border-radius: 14px;
  padding: 1.5rem;
}
.contact-field { margin-bottom: 1rem; }
.contact-field label { display: block; margin-bottom: 0.3rem; }
.contact-field input, .contact-field textarea {
  width: 100%%;
  padding: 0.6rem 0.8rem;
  border: 1px solid rgba(0, 0, 0, 0.2);
  border-radius: 8px;
  font-family: inherit;
}
.form-status[data-state="error"] { color: var(--primary-bright); }
.form-status[data-state="success"] { color: var(--primary-dark); }

.tag-list { display: flex; flex-wrap: wrap; gap: 0.5rem; }
.tag {
  padding: 0.3rem 0.8rem;
  border-radius: 999px;
  border: 1px solid rgba(0, 0, 0, 0.15);
  text-decoration: none;
  color: var(--text-muted);
  font-size: 0.85rem;
}
.tag.primary { border-color: var(--primary); color: var(--primary); }

.site-footer {
  margin-top: 3rem;
  padding: 2.5rem 0;
  border-top: 1px solid rgba(0, 0, 0, 0.08);
  color: var(--text-muted);
  font-size: 0.95rem;
}
.footer-grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
  gap: 1.5rem;
}
.footer-title { font-weight: bold; color: var(--text-main); }
.footer-links { display: flex; flex-direction: column; gap: 0.4rem; }

.reveal { opacity: 0; transform: translateY(14px); transition: all 0.5s ease; }
.reveal.is-visible { opacity: 1; transform: none; }

@media (max-width: 760px) {
  .hero-inner, .content-grid, .newsletter { grid-template-columns: 1fr; }
  .site-header { flex-direction: column; align-items: flex-start; }
}
`,
		theme.Primary, theme.PrimaryDark, theme.PrimaryBright,
		theme.Background, theme.Paper, theme.Accent,
		theme.TextMain, theme.TextMuted)
}

// BuildJS returns the page script: reveal-on-scroll, smooth anchor
// scrolling, and the newsletter/contact form submit handlers.
func BuildJS() string {
	return `const prefersReduced = window.matchMedia('(prefers-reduced-motion: reduce)').matches;

function revealOnScroll() {
  const revealItems = document.querySelectorAll('.reveal');
  if (prefersReduced) {
    revealItems.forEach((item) => item.classList.add('is-visible'));
    return;
  }
  const observer = new IntersectionObserver((entries) => {
    entries.forEach((entry) => {
      if (entry.isIntersecting) {
        entry.target.classList.add('is-visible');
        observer.unobserve(entry.target);
      }
    });
  }, { threshold: 0.2 });

  revealItems.forEach((item) => observer.observe(item));
}

function smoothScroll() {
  document.querySelectorAll('a[href^="#"]').forEach((link) => {
    link.addEventListener('click', (event) => {
      const targetId = link.getAttribute('href');
      if (!targetId || targetId.length < 2) return;
      const target = document.querySelector(targetId);
      if (!target) return;
      event.preventDefault();
      target.scrollIntoView({ behavior: prefersReduced ? 'auto' : 'smooth' });
    });
  });
}

function setupNewsletter() {
  const form = document.querySelector('[data-newsletter-form]');
  if (!form) return;
  const status = form.querySelector('.form-status');
  const body = document.body;
  const mode = body.dataset.newsletterMode || 'local';
  const providerUrl = body.dataset.newsletterUrl || '';
  const setStatus = (message, state) => {
    if (!status) return;
    status.textContent = message;
    if (state) {
      status.dataset.state = state;
    } else {
      status.removeAttribute('data-state');
    }
  };
  form.addEventListener('submit', async (event) => {
    event.preventDefault();
    const emailInput = form.querySelector('input[name="email"]');
    const email = emailInput ? emailInput.value.trim() : '';
    if (!email) {
      setStatus('Please enter a valid email.', 'error');
      return;
    }
    const companyInput = form.querySelector('input[name="company"]');
    const company = companyInput ? companyInput.value.trim() : '';
    const endpoint = mode === 'local' || !providerUrl ? form.getAttribute('action') : providerUrl;
    if (!endpoint) {
      setStatus('Newsletter endpoint is not configured.', 'error');
      return;
    }
    setStatus('Submitting...', 'pending');
    try {
      const response = await fetch(endpoint, {
        method: 'POST',
        headers: { 'Content-Type': 'application/x-www-form-urlencoded' },
        body: new URLSearchParams({ email, company })
      });
      const payload = await response.json().catch(() => null);
      const ok = response.ok && (payload === null || typeof payload.ok === 'undefined' || payload.ok);
      if (ok) {
        setStatus('Thanks for subscribing.', 'success');
        form.reset();
      } else {
        setStatus((payload && payload.error) || 'Subscription failed. Please try again.', 'error');
      }
    } catch (error) {
      setStatus('Subscription failed. Please try again.', 'error');
    }
  });
}

function setupContactForm() {
  const form = document.querySelector('[data-contact-form]');
  if (!form) return;
  const status = form.querySelector('.form-status');
  form.addEventListener('submit', async (event) => {
    event.preventDefault();
    const name = (form.querySelector('input[name="name"]') || {}).value || '';
    const email = (form.querySelector('input[name="email"]') || {}).value || '';
    const message = (form.querySelector('textarea[name="message"]') || {}).value || '';
    const company = (form.querySelector('input[name="company"]') || {}).value || '';
    if (!name.trim() || !email.trim() || !message.trim()) {
      status.textContent = 'Please complete all required fields.';
      return;
    }
    const endpoint = form.getAttribute('action');
    if (!endpoint) {
      status.textContent = 'Contact endpoint is not configured.';
      return;
    }
    status.textContent = 'Sending...';
    try {
      const response = await fetch(endpoint, {
        method: 'POST',
        headers: { 'Content-Type': 'application/x-www-form-urlencoded' },
        body: new URLSearchParams({ name, email, message, company })
      });
      const payload = await response.json().catch(() => ({}));
      if (response.ok && payload.ok) {
        status.textContent = 'Message sent. Thank you.';
        form.reset();
      } else {
        status.textContent = payload.error || 'Message failed. Please try again.';
      }
    } catch (error) {
      status.textContent = 'Message failed. Please try again.';
    }
  });
}

revealOnScroll();
smoothScroll();
setupNewsletter();
setupContactForm();
`
}

// BuildPlaceholderSVG renders a labeled placeholder illustration.
func BuildPlaceholderSVG(label string) string {
	safe := escape(label)
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 600 400" role="img" aria-label=%q>
  <defs>
    <linearGradient id="g" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0%%" stop-color="#6b0f1a" stop-opacity="0.2" />
      <stop offset="100%%" stop-color="#e0b15a" stop-opacity="0.3" />
    </linearGradient>
  </defs>
  <rect width="600" height="400" fill="#f4ecea" />
  <rect x="40" y="40" width="520" height="320" fill="url(#g)" rx="26" />
  <circle cx="470" cy="130" r="70" fill="#6b0f1a" fill-opacity="0.16" />
  <rect x="120" y="230" width="240" height="18" rx="9" fill="#6b0f1a" fill-opacity="0.25" />
  <rect x="120" y="260" width="180" height="12" rx="6" fill="#0f0f0f" fill-opacity="0.2" />
  <text x="120" y="205" fill="#3e0a11" font-family="Georgia, serif" font-size="22">%s</text>
</svg>
`, safe, safe)
}
