// Package sanitizer cleans untrusted strings before they reach HTML pages,
// JSON fields rendered into HTML, or log lines.
//
//	safe := sanitizer.EscapeHTML(`<script>alert("x")</script>`)
//	// &lt;script&gt;alert(&#34;x&#34;)&lt;&#x2F;script&gt;
package sanitizer
