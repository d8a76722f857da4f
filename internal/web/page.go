package web

import (
	"html/template"
	"net/url"

	"github.com/san-kum/flakesim/internal/config"
)

type pageField struct {
	Name  string
	Label string
	Value string
	Step  string
}

type pageData struct {
	Fields    []pageField
	Direction bool
	Width     float64
	Height    float64
	QRSrc     template.URL
}

func newPageData(q url.Values, width, height float64) pageData {
	p := config.FromQuery(q)
	v := p.Values()
	return pageData{
		Fields: []pageField{
			{Name: config.KeyLayers, Label: "layers", Value: v.Get(config.KeyLayers), Step: "1"},
			{Name: config.KeyBranches, Label: "branches", Value: v.Get(config.KeyBranches), Step: "1"},
			{Name: config.KeySize, Label: "size", Value: v.Get(config.KeySize), Step: "any"},
			{Name: config.KeyBaseAngle, Label: "base angle", Value: v.Get(config.KeyBaseAngle), Step: "any"},
			{Name: config.KeySpeed, Label: "speed", Value: v.Get(config.KeySpeed), Step: "any"},
		},
		Direction: p.Direction,
		Width:     width,
		Height:    height,
		QRSrc:     template.URL(qrPath + "?" + p.Encode()),
	}
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>flakesim</title>
<style>
body { background: #0a0a0a; color: #8c8c8c; font-family: monospace; display: flex; gap: 24px; margin: 24px; }
form { display: flex; flex-direction: column; gap: 8px; min-width: 220px; }
label { display: flex; justify-content: space-between; gap: 12px; }
input { background: #141414; color: #ffffff; border: 1px solid #3c3c3c; width: 90px; }
#status { color: #ff4757; }
</style>
</head>
<body>
<form id="params">
{{range .Fields}}<label>{{.Label}} <input type="number" name="{{.Name}}" value="{{.Value}}" step="{{.Step}}"></label>
{{end}}<label>direction <input type="checkbox" name="direction"{{if .Direction}} checked{{end}}></label>
<button type="submit">apply</button>
<div id="status"></div>
<img id="qr" src="{{.QRSrc}}" width="160" height="160" alt="share link">
</form>
<div id="stage" style="width: {{.Width}}px; height: {{.Height}}px"></div>
<script>
const form = document.getElementById("params");
const stage = document.getElementById("stage");
const status = document.getElementById("status");
const qr = document.getElementById("qr");
const scheme = location.protocol === "https:" ? "wss://" : "ws://";
const ws = new WebSocket(scheme + location.host + "/ws" + location.search);

ws.onmessage = (ev) => {
  const m = JSON.parse(ev.data);
  switch (m.type) {
  case "frame":
    stage.innerHTML = m.svg;
    break;
  case "location":
    history.replaceState(null, "", "?" + m.query);
    qr.src = "/qr.png?" + m.query;
    break;
  case "error":
    status.textContent = m.error;
    break;
  }
};
ws.onclose = () => { if (!status.textContent) status.textContent = "disconnected"; };

form.addEventListener("submit", (ev) => {
  ev.preventDefault();
  const data = {};
  new FormData(form).forEach((v, k) => { data[k] = v; });
  ws.send(JSON.stringify({ type: "submit", form: data }));
});
</script>
</body>
</html>
`))
