package runner

import "ui_harness/domain/entities"

// Selectors of the saucedemo login flow
const (
	UsernameField entities.Selector = `[data-test="username"]`
	PasswordField entities.Selector = `[data-test="password"]`
	LoginButton   entities.Selector = `[data-test="login-button"]`
	ProductList   entities.Selector = `.inventory_list`
)

// SauceDemoLogin - the happy-path login of the demo store: each field is
// checked for visibility before it is used, then the redirect to the product
// list is verified
func SauceDemoLogin(username, password string) entities.Scenario {
	return NewScenario("Login Tests / Happy Path - Valid Login ("+username+")").
		Navigate("open login page", "/").
		ExpectVisible("username field visible", UsernameField).
		Fill("enter username", UsernameField, username).
		ExpectVisible("password field visible", PasswordField).
		Fill("enter password", PasswordField, password).
		ExpectVisible("login button visible", LoginButton).
		Click("click login", LoginButton).
		ExpectURL("verify navigation", `/.*\/inventory\.html$/`).
		ExpectText("verify products title", "Products").
		ExpectVisible("verify product list", ProductList).
		MustBuild()
}
