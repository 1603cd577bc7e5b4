package marketplace

import (
	"github.com/playwright-community/playwright-go"
)

// Test doubles for the narrow slice of the playwright API the pipeline
// touches. The real interfaces are embedded so the fakes satisfy them;
// any method a test does not stub panics on use, which is exactly what
// we want from an unexpected call.

type fakePage struct {
	playwright.Page

	gotoFunc        func(url string, opts ...playwright.PageGotoOptions) (playwright.Response, error)
	waitLoadState   func(opts ...playwright.PageWaitForLoadStateOptions) error
	waitForSelector func(sel string, opts ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error)
	evaluate        func(expr string, args ...interface{}) (interface{}, error)
	querySelector   func(sel string) (playwright.ElementHandle, error)
	locatorFunc     func(sel string, opts ...playwright.PageLocatorOptions) playwright.Locator
}

func (f *fakePage) Goto(url string, opts ...playwright.PageGotoOptions) (playwright.Response, error) {
	if f.gotoFunc != nil {
		return f.gotoFunc(url, opts...)
	}
	return nil, nil
}

func (f *fakePage) WaitForLoadState(opts ...playwright.PageWaitForLoadStateOptions) error {
	if f.waitLoadState != nil {
		return f.waitLoadState(opts...)
	}
	return nil
}

func (f *fakePage) WaitForSelector(sel string, opts ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
	if f.waitForSelector != nil {
		return f.waitForSelector(sel, opts...)
	}
	return nil, nil
}

func (f *fakePage) Evaluate(expr string, args ...interface{}) (interface{}, error) {
	if f.evaluate != nil {
		return f.evaluate(expr, args...)
	}
	return nil, nil
}

func (f *fakePage) QuerySelector(sel string, opts ...playwright.PageQuerySelectorOptions) (playwright.ElementHandle, error) {
	if f.querySelector != nil {
		return f.querySelector(sel)
	}
	return nil, nil
}

func (f *fakePage) Locator(sel string, opts ...playwright.PageLocatorOptions) playwright.Locator {
	if f.locatorFunc != nil {
		return f.locatorFunc(sel, opts...)
	}
	return &fakeLocator{}
}

// playwrightLocator is an alias so the embedded field below is not named
// "Locator", which would shadow the interface's own Locator method and
// keep *fakeLocator from satisfying playwright.Locator.
type playwrightLocator = playwright.Locator

type fakeLocator struct {
	playwrightLocator

	countFunc   func() (int, error)
	waitForFunc func(opts ...playwright.LocatorWaitForOptions) error
	getAttrFunc func(name string, opts ...playwright.LocatorGetAttributeOptions) (string, error)
	clickFunc   func(opts ...playwright.LocatorClickOptions) error
}

func (f *fakeLocator) First() playwright.Locator {
	return f
}

func (f *fakeLocator) Count() (int, error) {
	if f.countFunc != nil {
		return f.countFunc()
	}
	return 0, nil
}

func (f *fakeLocator) WaitFor(opts ...playwright.LocatorWaitForOptions) error {
	if f.waitForFunc != nil {
		return f.waitForFunc(opts...)
	}
	return nil
}

func (f *fakeLocator) GetAttribute(name string, opts ...playwright.LocatorGetAttributeOptions) (string, error) {
	if f.getAttrFunc != nil {
		return f.getAttrFunc(name, opts...)
	}
	return "", nil
}

func (f *fakeLocator) Click(opts ...playwright.LocatorClickOptions) error {
	if f.clickFunc != nil {
		return f.clickFunc(opts...)
	}
	return nil
}

type fakeElement struct {
	playwright.ElementHandle

	text    string
	textErr error
}

func (f *fakeElement) TextContent() (string, error) {
	return f.text, f.textErr
}

// fakeSessions hands out a single fake page and counts releases.
type fakeSessions struct {
	page       playwright.Page
	newErr     error
	releases   int
	releaseErr error
}

func (f *fakeSessions) NewSession() (playwright.Page, func() error, error) {
	if f.newErr != nil {
		return nil, nil, f.newErr
	}
	return f.page, func() error {
		f.releases++
		return f.releaseErr
	}, nil
}
