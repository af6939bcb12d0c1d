package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterStatic wires the tracker page at GET "/".
func RegisterStatic(r *gin.Engine) {
	const page = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>Water Intake Tracker</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Cantarell,Noto Sans,sans-serif;margin:0;padding:2rem;background:#0b1520;color:#e0e0e0}
.container{max-width:820px;margin:0 auto;display:grid;gap:1rem}
.card{background:#112233;border:1px solid #23405c;border-radius:12px;padding:1.25rem}
h1{font-size:1.4rem;margin:0 0 .5rem}
h2{font-size:1.05rem;margin:0 0 .75rem}
input,select,button{font-size:1rem}
input,select{padding:.6rem;border-radius:8px;border:1px solid #23405c;background:#0b1520;color:#e0e0e0}
.row{display:flex;flex-wrap:wrap;gap:.5rem;align-items:center}
button{padding:.6rem 1rem;border:none;background:#4fc3f7;color:#fff;font-weight:bold;border-radius:6px;cursor:pointer}
button:hover{background:#0288d1}
.bar{height:14px;background:#0b1520;border-radius:7px;overflow:hidden;border:1px solid #23405c}
.bar>div{height:100%;width:0;background:#2193b0}
table{width:100%;border-collapse:collapse}
th,td{text-align:left;padding:.4rem;border-bottom:1px solid #23405c}
small{opacity:.7}
a{color:#97d3ff}
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h1>Water Intake Tracker</h1>
    <small>Log your water intake and watch your hydration trends grow.</small>
  </div>
  <div class="card">
    <h2>Log intake</h2>
    <div class="row">
      <input id="user" type="text" placeholder="user id"/>
      <input id="ml" type="number" min="0" step="100" value="500"/> ml
      <input id="date" type="date"/>
      <input id="time" type="time"/>
      <button id="log">Submit</button>
    </div>
    <div id="msg" style="margin-top:.75rem"></div>
  </div>
  <div class="card">
    <h2>Today's progress</h2>
    <div class="row"><small>Daily goal</small><input id="goal" type="number" min="500" step="100" value="2000"/> ml</div>
    <div class="bar" style="margin-top:.75rem"><div id="bar"></div></div>
    <p id="today"></p>
  </div>
  <div class="card">
    <h2>AI feedback</h2>
    <div id="feedback"><small>Log your water intake to see AI feedback here.</small></div>
  </div>
  <div class="card">
    <h2>History</h2>
    <div class="row">
      <select id="filter">
        <option>Today</option><option>Last 7 days</option><option>Last 30 days</option><option selected>All time</option>
      </select>
      <a id="csv" href="#">Export CSV</a>
    </div>
    <table><thead><tr><th>Date</th><th>Day</th><th>Amount (ml)</th></tr></thead><tbody id="rows"></tbody></table>
  </div>
</div>
<script>
const $ = id => document.getElementById(id);
const now = new Date();
$('date').value = now.getFullYear()+'-'+String(now.getMonth()+1).padStart(2,'0')+'-'+String(now.getDate()).padStart(2,'0');
$('time').value = now.toTimeString().slice(0,5);
function esc(s){ const d=document.createElement('div'); d.textContent=String(s); return d.innerHTML; }
function offset(){
  const m = -new Date().getTimezoneOffset(), a = Math.abs(m);
  return (m>=0?'+':'-')+String(Math.floor(a/60)).padStart(2,'0')+':'+String(a%60).padStart(2,'0');
}
function user(){ return encodeURIComponent($('user').value.trim()); }
async function refresh(){
  if(!user()) return;
  const f = encodeURIComponent($('filter').value);
  $('csv').href = '/history/'+user()+'/export.csv?filter='+f;
  const h = await fetch('/history/'+user()+'?filter='+f).then(r=>r.json()).catch(()=>({}));
  $('rows').innerHTML = (h.history||[]).map(r=>'<tr><td>'+esc(r.date)+'</td><td>'+esc(r.weekday)+'</td><td>'+esc(r.amount_ml)+'</td></tr>').join('')
    || '<tr><td colspan="3"><small>No intake history found.</small></td></tr>';
  const p = await fetch('/progress/'+user()+'?goal='+encodeURIComponent($('goal').value)).then(r=>r.json()).catch(()=>({}));
  $('bar').style.width = Math.round((p.progress||0)*100)+'%';
  $('today').textContent = (p.today_ml||0)+' / '+(p.goal_ml||0)+' ml';
}
async function logIntake(){
  const body = { user_id: $('user').value.trim(), intake_ml: Number($('ml').value) };
  if($('date').value){ body.timestamp = $('date').value+'T'+($('time').value||'00:00')+':00'+offset(); }
  const res = await fetch('/log_intake', {method:'POST', headers:{'Content-Type':'application/json'}, body:JSON.stringify(body)});
  const data = await res.json().catch(()=>({}));
  if(!res.ok){ $('msg').textContent = data.error || 'Please enter a valid user ID and water intake amount.'; return; }
  $('msg').textContent = 'Logged '+data.intake_ml+' ml for '+data.user_id;
  if(data.analysis){ $('feedback').textContent = data.analysis; }
  else if(data.analysis_error){ $('feedback').textContent = 'AI feedback unavailable: '+data.analysis_error; }
  refresh();
}
$('log').addEventListener('click', logIntake);
$('filter').addEventListener('change', refresh);
$('goal').addEventListener('change', refresh);
$('user').addEventListener('change', refresh);
</script>
</body>
</html>`
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})
}
