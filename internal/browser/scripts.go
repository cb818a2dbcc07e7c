package browser

// Scripts return plain objects. Rod hands them back as gson values.

const evaluateScript = `(expr) => {
	try {
		const result = document.evaluate(expr, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null);
		let el = result.singleNodeValue;
		if (el && el.nodeType !== 1) {
			el = el.parentElement;
		}
		if (!el) {
			return null;
		}
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		const visible = rect.width > 0 && rect.height > 0 &&
			style.visibility !== 'hidden' && style.display !== 'none';
		return {
			found: true,
			visible: visible,
			tag: el.tagName,
			text: (el.textContent || '').trim(),
			id: el.id || '',
			ariaLabel: el.getAttribute('aria-label') || '',
			placeholder: el.getAttribute('placeholder') || '',
			name: el.getAttribute('name') || ''
		};
	} catch (error) {
		return { error: error.message };
	}
}`

const snapshotScript = `(selector) => {
	const out = [];
	document.querySelectorAll(selector).forEach((el, index) => {
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		const attributes = {};
		for (const a of el.attributes) {
			attributes[a.name] = a.value;
		}
		let text = (el.innerText || el.textContent || '').replace(/\s+/g, ' ').trim();
		if (el.tagName === 'INPUT') {
			const type = (el.getAttribute('type') || '').toLowerCase();
			text = ['submit', 'button', 'reset'].includes(type) ? (el.value || '').trim() : '';
		}
		out.push({
			index: index,
			text: text,
			tag_name: el.tagName.toLowerCase(),
			role: el.getAttribute('role') || '',
			aria_label: el.getAttribute('aria-label') || '',
			placeholder: el.getAttribute('placeholder') || '',
			title: el.getAttribute('title') || '',
			alt: el.getAttribute('alt') || '',
			attributes: attributes,
			is_visible: rect.width > 0 && rect.height > 0 &&
				style.visibility !== 'hidden' && style.display !== 'none'
		});
	});
	return out;
}`

const outerHTMLScript = `() => document.documentElement.outerHTML`
