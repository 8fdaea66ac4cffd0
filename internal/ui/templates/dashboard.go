// Package templates holds the dashboard page shell. The page is static;
// every data region is patched over SSE by datastar once loaded.
package templates

import "github.com/a-h/templ"

// Dashboard returns the full page component rendered at GET /.
func Dashboard() templ.Component {
	return templ.Raw(dashboardPage)
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Sales Analytics Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6fa;color:#1f2937}
header{background:#1f77b4;color:#fff;padding:1.2rem 2rem}
header h1{margin:0;font-size:1.6rem}
header p{margin:.2rem 0 0;opacity:.85}
main{padding:1.5rem 2rem;max-width:1200px;margin:0 auto}
.filters{display:flex;flex-wrap:wrap;gap:1rem;background:#fff;border-radius:.5rem;padding:1rem;margin-bottom:1.5rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.filters label{display:flex;flex-direction:column;font-size:.8rem;gap:.25rem}
.kpi-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(160px,1fr));gap:1rem;margin-bottom:1rem}
.kpi-card{background:#fff;border-left:4px solid #1f77b4;border-radius:.5rem;padding:1rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.kpi-label{display:block;font-size:.75rem;color:#6b7280;text-transform:uppercase}
.kpi-card strong{font-size:1.3rem}
.trend-banner{background:#fff;border-radius:.5rem;padding:.75rem 1rem;margin-bottom:1.5rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.chart-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(420px,1fr));gap:1.5rem}
.chart-panel{background:#fff;border-radius:.5rem;padding:1rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.chart-panel h2{font-size:1rem;margin:0 0 .75rem}
.modern-table{width:100%;border-collapse:collapse;font-size:.85rem}
.modern-table th{text-align:left;border-bottom:2px solid #e5e7eb;padding:.5rem}
.modern-table td{border-bottom:1px solid #f3f4f6;padding:.5rem}
.error{color:#b91c1c}
</style>
</head>
<body data-signals="{categoryData:[],regionData:[],sellersData:[],paymentData:[],monthlyData:[],trendData:{}}"
      data-on-load="@get('/sse/dashboard')">
<header>
<h1>Sales Analytics Dashboard</h1>
<p>Interactive sales KPIs, rankings and trends</p>
</header>
<main>
<form class="filters" id="filter-bar"
      data-on-change="@get('/sse/dashboard?from='+$from+'&to='+$to+'&status='+$status+'&category='+$category+'&region='+$region+'&top='+$top)"
      data-signals="{from:'',to:'',status:'',category:'',region:'',top:'10'}">
<label>From<input type="date" data-bind-from/></label>
<label>To<input type="date" data-bind-to/></label>
<label>Status
<select data-bind-status>
<option value="">All</option>
<option value="completed">Completed</option>
<option value="pending">Pending</option>
<option value="cancelled">Cancelled</option>
</select>
</label>
<label>Category<input type="text" placeholder="e.g. Electronics" data-bind-category/></label>
<label>Region<input type="text" placeholder="e.g. South" data-bind-region/></label>
<label>Top N sellers<input type="number" min="1" max="50" data-bind-top/></label>
</form>

<section id="kpi-cards"><p>Loading metrics…</p></section>

<div class="chart-grid">
<div class="chart-panel"><h2>Monthly Revenue</h2><canvas id="monthly-chart"></canvas></div>
<div class="chart-panel"><h2>Revenue by Category</h2><canvas id="category-chart"></canvas></div>
<div class="chart-panel"><h2>Revenue by Region</h2><canvas id="region-chart"></canvas></div>
<div class="chart-panel"><h2>Top Sellers</h2><canvas id="sellers-chart"></canvas></div>
<div class="chart-panel"><h2>Payment Methods</h2><canvas id="payment-chart"></canvas></div>
<div class="chart-panel">
<h2>Detailed Records</h2>
<div id="records-content" data-on-load="@get('/sse/records')"><p>Loading records…</p></div>
</div>
</div>
</main>
<script>
const charts = {};
function upsertChart(id, type, labels, values, label) {
  const ctx = document.getElementById(id);
  if (!ctx) return;
  if (charts[id]) {
    charts[id].data.labels = labels;
    charts[id].data.datasets[0].data = values;
    charts[id].update();
    return;
  }
  charts[id] = new Chart(ctx, {
    type: type,
    data: {labels: labels, datasets: [{label: label, data: values, backgroundColor: '#1f77b4'}]},
    options: {responsive: true, plugins: {legend: {display: type === 'pie'}}}
  });
}
document.addEventListener('datastar-signal-patch', () => {
  const s = window.ds?.signals ?? {};
  const rows = (data) => (data || []).map(r => [r.key, r.revenue]);
  const monthly = s.monthlyData || [];
  upsertChart('monthly-chart', 'line', monthly.map(m => m.month), monthly.map(m => m.revenue), 'Revenue');
  upsertChart('category-chart', 'bar', rows(s.categoryData).map(r => r[0]), rows(s.categoryData).map(r => r[1]), 'Revenue');
  upsertChart('region-chart', 'bar', rows(s.regionData).map(r => r[0]), rows(s.regionData).map(r => r[1]), 'Revenue');
  upsertChart('sellers-chart', 'bar', rows(s.sellersData).map(r => r[0]), rows(s.sellersData).map(r => r[1]), 'Revenue');
  upsertChart('payment-chart', 'pie', rows(s.paymentData).map(r => r[0]), rows(s.paymentData).map(r => r[1]), 'Revenue');
});
</script>
</body>
</html>`
