package layout

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Language}}" data-locale="{{.Locale}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.SiteName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css?v={{.AssetVersion}}">
</head>
<body data-header-offset="{{.HeaderOffset}}"
  {{- if .Stars.Repo}}
  data-star-repo="{{.Stars.Repo}}"
  data-star-api="{{.Stars.APIBase}}"
  data-star-ttl="{{.Stars.TTL}}"
  data-star-ttl-ms="{{.Stars.TTLMillis}}"
  data-star-count-key="{{.Stars.Keys.Count}}"
  data-star-fetch-time-key="{{.Stars.Keys.FetchTime}}"
  {{- end}}
  {{- if .LiveReload}} data-livereload="{{.BasePath}}livereload"{{end}}>
  <header class="header">
    <a class="header-brand" href="{{.BasePath}}index.html">
      {{- if .Logo}}<img src="{{.BasePath}}{{.Logo}}" alt="{{.SiteName}}" class="header-logo">{{end -}}
      <span>{{.SiteName}}</span>
    </a>
    {{- if .ShowDoc}}
    <nav class="header-nav">
      <a href="{{.BasePath}}index.html"{{if eq .Current "doc"}} class="active"{{end}}>Docs</a>
      {{- if .RepoURL}}<a href="{{.RepoURL}}" rel="noopener">GitHub</a>{{end}}
    </nav>
    {{- if .OtherVersion}}
    <details class="version-select">
      <summary>{{.Version}}</summary>
      <ul>
        {{- range .OtherVersion}}
        <li><a href="{{$.BasePath}}../{{.Name}}/index.html"{{if .Current}} class="active"{{end}}>{{.Name}}</a></li>
        {{- end}}
      </ul>
    </details>
    {{- end}}
    {{- end}}
  </header>
  <div class="{{.WrapperClass}}{{if .IsBenchMark}} benchmark{{end}}">
    {{- if .MenuHTML}}
    <nav class="menu" id="menu">{{.MenuHTML}}</nav>
    {{- end}}
    <main class="doc-content{{if .IsBenchMark}} full-width{{end}}">
      <article class="page-content" data-doc-id="{{.ID}}">
        {{.Children}}
      </article>
      {{- if not .IsBenchMark}}
      <footer class="footer">
        <span>{{.SiteName}}{{if .Version}} · {{.Version}}{{end}}</span>
      </footer>
      {{- end}}
    </main>
    {{- if .AnchorHTML}}
    <aside class="anchor-panel">
      <div class="anchor-title">On this page</div>
      <div class="anchor-menu" id="anchor-menu">{{.AnchorHTML}}</div>
      {{- if .RepoURL}}
      <a class="star-badge" href="{{.RepoURL}}" rel="noopener">
        <svg width="16" height="16" viewBox="0 0 16 16" fill="currentColor" aria-hidden="true"><path d="M8 .25a.75.75 0 0 1 .673.418l1.882 3.815 4.21.612a.75.75 0 0 1 .416 1.279l-3.046 2.97.719 4.192a.75.75 0 0 1-1.088.791L8 12.347l-3.766 1.98a.75.75 0 0 1-1.088-.79l.72-4.194L.818 6.374a.75.75 0 0 1 .416-1.28l4.21-.611L7.327.668A.75.75 0 0 1 8 .25z"/></svg>
        <span id="star-count">{{.StarText}}</span> stars
      </a>
      {{- end}}
    </aside>
    {{- end}}
  </div>
  <div id="to-top" class="button-to-top" role="button" tabindex="0" aria-label="Scroll to top" hidden>
    <svg width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><polyline points="18 15 12 9 6 15"/></svg>
  </div>
  <script type="application/json" id="page-headings">{{.HeadingsJSON}}</script>
  {{- if .LiveReload}}
  <script src="{{.BasePath}}livereload.js?v={{.AssetVersion}}"></script>
  {{- end}}
  {{- if .WasmModule}}
  <script src="{{.BasePath}}wasm_exec.js?v={{.AssetVersion}}"></script>
  <script src="{{.BasePath}}wasm_boot.js?v={{.AssetVersion}}" data-module="{{.BasePath}}{{.WasmModule}}?v={{.AssetVersion}}"></script>
  {{- else}}
  <script src="{{.BasePath}}script.js?v={{.AssetVersion}}"></script>
  {{- end}}
</body>
</html>`

// CSS is the stylesheet shared by every page.
const CSS = `:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #00a887;
  --header-height: 62px;
  --menu-width: 260px;
  --anchor-width: 220px;
  --content-max-width: 860px;
}

*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

/* ============ Header ============ */
.header {
  position: sticky;
  top: 0;
  z-index: 10;
  height: var(--header-height);
  display: flex;
  align-items: center;
  gap: 24px;
  padding: 0 24px;
  background: var(--bg);
  border-bottom: 1px solid var(--border);
}
.header-brand { display: flex; align-items: center; gap: 8px; font-weight: 600; color: var(--text); }
.header-logo { height: 28px; }
.header-nav { display: flex; gap: 16px; }
.header-nav a { color: var(--text-muted); }
.header-nav a.active { color: var(--accent); }
.version-select { margin-left: auto; position: relative; cursor: pointer; }
.version-select ul { position: absolute; right: 0; list-style: none; background: var(--bg); border: 1px solid var(--border); padding: 8px 12px; }

/* ============ Layout ============ */
.doc-wrapper { display: flex; align-items: flex-start; }
.menu {
  position: sticky;
  top: var(--header-height);
  width: var(--menu-width);
  max-height: calc(100vh - var(--header-height));
  overflow-y: auto;
  padding: 16px;
  border-right: 1px solid var(--border);
  background: var(--bg-secondary);
  font-size: 14px;
}
.menu ul { list-style: none; padding-left: 12px; }
.menu > ul { padding-left: 0; }
.menu .dir > ul { display: none; }
.menu .dir.expanded > ul { display: block; }
.menu .dir-toggle { cursor: pointer; font-weight: 600; }
.menu a.active { font-weight: 600; }

.doc-content { flex: 1; min-width: 0; max-width: var(--content-max-width); padding: 32px 48px; }
.doc-content.full-width { max-width: none; }
.page-content h1, .page-content h2, .page-content h3 { margin: 1.4em 0 0.6em; line-height: 1.3; }
.page-content p, .page-content ul, .page-content ol, .page-content pre, .page-content table { margin-bottom: 1em; }
.page-content pre { padding: 12px 16px; overflow-x: auto; border: 1px solid var(--border); border-radius: 6px; }
.page-content table { border-collapse: collapse; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 6px 12px; }

.footer { margin-top: 48px; padding-top: 16px; border-top: 1px solid var(--border); color: var(--text-muted); font-size: 13px; }

/* ============ Anchor panel ============ */
.anchor-panel {
  position: sticky;
  top: var(--header-height);
  width: var(--anchor-width);
  padding: 32px 16px;
  font-size: 13px;
}
.anchor-title { font-weight: 600; margin-bottom: 8px; }
.anchor-menu .item a { display: block; color: var(--text-muted); padding: 2px 0; }
.anchor-menu .item a.active { color: var(--accent); }
.anchor-menu .child-item { padding-left: 12px; }
.star-badge {
  display: inline-flex;
  align-items: center;
  gap: 6px;
  margin-top: 16px;
  padding: 4px 10px;
  border: 1px solid var(--border);
  border-radius: 4px;
  color: var(--text);
}

/* ============ Scroll to top ============ */
.button-to-top {
  position: fixed;
  right: 24px;
  bottom: 24px;
  width: 40px;
  height: 40px;
  display: flex;
  align-items: center;
  justify-content: center;
  border-radius: 50%;
  background: var(--accent);
  color: #fff;
  cursor: pointer;
}
.button-to-top[hidden] { display: none; }

@media (max-width: 1100px) {
  .anchor-panel { display: none; }
}
@media (max-width: 768px) {
  .menu { display: none; }
  .doc-content { padding: 24px 16px; }
}
`

// Script is the page behavior used when no browser module is configured.
// It mirrors the wasm controller: anchor clicks, the scroll-to-top button and
// the cached star badge.
const Script = `(function() {
  "use strict";

  var body = document.body;
  var offset = parseFloat(body.getAttribute("data-header-offset"));
  if (isNaN(offset)) offset = 62;

  // ===== Menu directories =====
  document.querySelectorAll(".dir-toggle").forEach(function(toggle) {
    toggle.addEventListener("click", function() {
      this.parentElement.classList.toggle("expanded");
    });
  });

  // ===== Anchor panel =====
  var anchorMenu = document.getElementById("anchor-menu");

  function scrollToAnchor(id) {
    var target = document.getElementById(id);
    if (!target) return;
    var top = target.getBoundingClientRect().top - document.body.getBoundingClientRect().top;
    window.scrollTo({ top: top - offset });
  }

  if (anchorMenu) {
    anchorMenu.addEventListener("click", function(e) {
      var link = e.target.closest("a[data-anchor]");
      if (!link) return;
      e.preventDefault();
      e.stopPropagation();
      var id = link.getAttribute("data-anchor");
      anchorMenu.querySelectorAll("a.active").forEach(function(a) { a.classList.remove("active"); });
      link.classList.add("active");
      scrollToAnchor(id);
    });
  }

  // ===== Scroll to top =====
  var toTop = document.getElementById("to-top");

  function onScroll() {
    if (toTop) toTop.hidden = document.documentElement.scrollTop === 0;
  }

  if (toTop) {
    var scrollTop = function() { window.scrollTo({ top: 0, behavior: "smooth" }); };
    toTop.addEventListener("click", scrollTop);
    toTop.addEventListener("keydown", scrollTop);
    window.addEventListener("scroll", onScroll);
    onScroll();
  }

  // ===== Star badge =====
  var repo = body.getAttribute("data-star-repo");
  var badge = document.getElementById("star-count");

  function read(key) {
    try { return localStorage.getItem(key); } catch (e) { return null; }
  }

  function write(key, value) {
    try { localStorage.setItem(key, String(value)); } catch (e) {}
  }

  if (repo && badge) {
    var countKey = body.getAttribute("data-star-count-key");
    var timeKey = body.getAttribute("data-star-fetch-time-key");
    var ttl = parseInt(body.getAttribute("data-star-ttl-ms"), 10) || 3600000;
    var api = (body.getAttribute("data-star-api") || "https://api.github.com").replace(/\/$/, "");

    var rawCount = read(countKey);
    var rawTime = read(timeKey);
    var cached = rawCount === null ? NaN : parseInt(rawCount, 10);
    var fetchedAt = rawTime === null ? NaN : parseInt(rawTime, 10);
    var hasCount = !isNaN(cached);

    if (hasCount) badge.textContent = String(cached);

    if (!hasCount || isNaN(fetchedAt) || Date.now() - fetchedAt > ttl) {
      fetch(api + "/repos/" + repo, { headers: { "Accept": "application/vnd.github+json" } })
        .then(function(r) { if (!r.ok) throw new Error(r.status); return r.json(); })
        .then(function(data) {
          var n = data && data.stargazers_count;
          if (typeof n !== "number" || n < 0) return;
          if (hasCount && n < cached) return;
          write(countKey, n);
          write(timeKey, Date.now());
          badge.textContent = String(n);
        })
        .catch(function() {});
    }
  }

})();
`

// WasmBoot starts the browser module named by its script tag's data-module.
const WasmBoot = `(function() {
  "use strict";
  var script = document.currentScript;
  var go = new Go();
  WebAssembly.instantiateStreaming(fetch(script.getAttribute("data-module")), go.importObject)
    .then(function(result) { go.run(result.instance); })
    .catch(function(err) { console.error("docsite: loading module failed", err); });
})();
`

// LiveReload reconnects to the dev server and reloads the page after a rebuild.
const LiveReload = `(function() {
  "use strict";
  var path = document.body.getAttribute("data-livereload");
  if (!path || !window.WebSocket) return;
  var url = new URL(path, window.location.href);
  url.protocol = url.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(url.href);
  ws.onmessage = function(e) { if (e.data === "reload") window.location.reload(); };
})();
`
