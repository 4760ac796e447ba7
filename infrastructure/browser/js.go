package browser

// Page and element checks shared by the CDP and WebDriver backends. Element
// checks are written as `el => ...` and adapted to each backend's calling
// convention.

// visibleTextJS - text nodes whose parent is rendered, joined by spaces
const visibleTextJS = `() => {
	const walker = document.createTreeWalker(
		document.body,
		NodeFilter.SHOW_TEXT,
		{
			acceptNode: function(node) {
				const parent = node.parentElement;
				if (!parent) return NodeFilter.FILTER_REJECT;
				const style = window.getComputedStyle(parent);
				if (style.display === 'none' || style.visibility === 'hidden') {
					return NodeFilter.FILTER_REJECT;
				}
				if (parent.closest('[hidden], script, style, noscript, template')) {
					return NodeFilter.FILTER_REJECT;
				}
				return NodeFilter.FILTER_ACCEPT;
			}
		}
	);

	const texts = [];
	let node;
	while (node = walker.nextNode()) {
		const text = node.textContent.trim();
		if (text.length > 0) {
			texts.push(text);
		}
	}
	return texts.join(' ');
}`

// isEditableJS - input-like, enabled and not read-only
const isEditableJS = `el => {
	if (el.disabled || el.readOnly) return false;
	if (el.isContentEditable) return true;
	const tag = el.tagName.toLowerCase();
	if (tag === 'textarea') return true;
	if (tag !== 'input') return false;
	const blocked = ['button', 'submit', 'reset', 'checkbox', 'radio', 'file', 'image', 'hidden'];
	return !blocked.includes((el.type || '').toLowerCase());
}`

// isObscuredJS - another element sits on top of the element's centre point
const isObscuredJS = `el => {
	const rect = el.getBoundingClientRect();
	const x = rect.left + rect.width / 2;
	const y = rect.top + rect.height / 2;
	if (x < 0 || y < 0 || x > window.innerWidth || y > window.innerHeight) return false;
	const top = document.elementFromPoint(x, y);
	return !!top && top !== el && !el.contains(top);
}`

// isEnabledJS - the element has no disabled flag
const isEnabledJS = `el => !el.disabled`

// clearJS - empties an input before typing
const clearJS = `el => { if ('value' in el) { el.value = ''; } else if (el.isContentEditable) { el.textContent = ''; } }`
