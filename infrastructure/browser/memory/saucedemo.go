package memory

import (
	"time"

	"ui_harness/domain/entities"
)

// Credentials accepted by the demo store
const (
	StandardUser  = "standard_user"
	LockedOutUser = "locked_out_user"
	DemoPassword  = "secret_sauce"
)

const loginHTML = `<!DOCTYPE html>
<html>
<head><title>Swag Labs</title><style>.error { color: red }</style></head>
<body>
  <div class="login_logo">Swag Labs</div>
  <div class="login_wrapper">
    <form id="login">
      <input class="input_error form_input" placeholder="Username" type="text" data-test="username" id="user-name" name="user-name">
      <input class="input_error form_input" placeholder="Password" type="password" data-test="password" id="password" name="password">
      <div class="error-message-container error"><h3 data-test="error" hidden></h3></div>
      <input type="submit" class="submit-button btn_action" data-test="login-button" id="login-button" name="login-button" value="Login">
    </form>
  </div>
</body>
</html>`

const inventoryHTML = `<!DOCTYPE html>
<html>
<head><title>Swag Labs</title></head>
<body>
  <div class="primary_header"><div class="app_logo">Swag Labs</div></div>
  <div class="header_secondary_container"><span class="title" data-test="title">Products</span></div>
  <div class="inventory_list" data-test="inventory-container">
    <div class="inventory_item"><div class="inventory_item_name">Sauce Labs Backpack</div><div class="inventory_item_price">$29.99</div></div>
    <div class="inventory_item"><div class="inventory_item_name">Sauce Labs Bike Light</div><div class="inventory_item_price">$9.99</div></div>
    <div class="inventory_item"><div class="inventory_item_name">Sauce Labs Bolt T-Shirt</div><div class="inventory_item_price">$15.99</div></div>
  </div>
</body>
</html>`

type demoOptions struct {
	loginDelay time.Duration
	broken     bool
}

// DemoOption customises the demo store
type DemoOption func(*demoOptions)

// WithLoginDelay - the redirect after a successful login happens after d
func WithLoginDelay(d time.Duration) DemoOption {
	return func(o *demoOptions) { o.loginDelay = d }
}

// WithBrokenLogin - the login button does nothing, so the URL never changes
func WithBrokenLogin() DemoOption {
	return func(o *demoOptions) { o.broken = true }
}

// NewSauceDemo - a small copy of the saucedemo store: a login form at / and
// the product list at /inventory.html
func NewSauceDemo(baseURL string, opts ...DemoOption) *Site {
	o := demoOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	site := NewSite(baseURL).
		Handle("/", loginHTML).
		Handle("/inventory.html", inventoryHTML)

	if o.broken {
		return site
	}

	return site.OnClick(`[data-test="login-button"]`, func(p *Page) error {
		user := p.Value(`[data-test="username"]`)
		pass := p.Value(`[data-test="password"]`)

		switch {
		case user == "":
			showLoginError(p, "Epic sadface: Username is required")
		case pass == "":
			showLoginError(p, "Epic sadface: Password is required")
		case user == LockedOutUser && pass == DemoPassword:
			showLoginError(p, "Epic sadface: Sorry, this user has been locked out.")
		case user == StandardUser && pass == DemoPassword:
			if o.loginDelay > 0 {
				p.After(o.loginDelay, func(p *Page) { p.Follow("/inventory.html") })
				return nil
			}
			return p.Follow("/inventory.html")
		default:
			showLoginError(p, "Epic sadface: Username and password do not match any user in this service")
		}
		return nil
	})
}

func showLoginError(p *Page, msg string) {
	const errorSel entities.Selector = `[data-test="error"]`
	p.SetText(errorSel, msg)
	p.RemoveAttr(errorSel, "hidden")
}
