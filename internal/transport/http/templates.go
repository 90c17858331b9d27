package http

// The markup lives inline so the binary stays self-contained.

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>{{.Title}} | Wanderlust</title>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; color: #222; }
nav { display: flex; align-items: center; gap: 16px; padding: 14px 28px; border-bottom: 1px solid #eee; }
nav a { color: #222; text-decoration: none; }
nav .brand { font-weight: 700; color: #fe424d; font-size: 20px; }
nav .spacer { flex: 1; }
main { max-width: 960px; margin: 0 auto; padding: 24px; }
.flash { padding: 12px 16px; border-radius: 8px; margin-bottom: 16px; }
.flash.success { background: #e6f7ec; color: #14623a; }
.flash.error { background: #fdebec; color: #8f2430; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 20px; }
.card { border: 1px solid #eee; border-radius: 12px; overflow: hidden; }
.card img { width: 100%; height: 160px; object-fit: cover; }
.card .body { padding: 12px; }
form.stack label { display: block; margin-top: 12px; font-weight: 600; }
form.stack input, form.stack textarea, form.stack select { width: 100%; padding: 8px; margin-top: 4px; border: 1px solid #ccc; border-radius: 6px; }
button, .btn { margin-top: 14px; padding: 10px 18px; border: none; border-radius: 6px; background: #fe424d; color: #fff; cursor: pointer; font-size: 15px; }
.muted { color: #777; font-size: 14px; }
footer { text-align: center; padding: 24px; color: #999; font-size: 13px; }
</style>
</head>
<body>
<nav>
  <a class="brand" href="/">Wanderlust</a>
  <a href="/listings">Explore</a>
  <a href="/experiences">Experiences</a>
  <div class="spacer"></div>
  {{if .CurrentUser}}
    <a href="/favorites">Saved</a>
    <a href="/listings/new">Airbnb your home</a>
    <span class="muted">{{.CurrentUser.Username}}</span>
    <a href="/logout">Log out</a>
  {{else}}
    <a href="/users/signup">Sign up</a>
    <a href="/users/login">Log in</a>
  {{end}}
</nav>
<main>
{{with .Flash}}<div class="flash {{.Kind}}">{{.Message}}</div>{{end}}
{{template "content" .}}
</main>
<footer>&copy; Wanderlust Private Limited</footer>
</body>
</html>`

var pageTemplates = map[string]string{
	"home": `{{define "content"}}
{{$p := .Data}}
<h1>Where to next?</h1>
<h2>Featured stays</h2>
<div class="grid">
  {{range $p.Featured}}
  <a class="card" href="/listings/{{.ID}}">
    {{with .ImageURL}}<img src="{{.}}" alt="" />{{end}}
    <div class="body">
      <strong>{{.Name}}</strong>
      <div class="muted">{{deref .Location}}{{with .Country}}, {{.}}{{end}}</div>
      <div class="muted">{{len .Reviews}} review(s)</div>
    </div>
  </a>
  {{end}}
</div>
<h2>Discover something different</h2>
<div class="grid">
  {{range $p.Random}}
  <a class="card" href="/listings/{{.ID}}">
    {{with .ImageURL}}<img src="{{.}}" alt="" />{{end}}
    <div class="body"><strong>{{.Name}}</strong></div>
  </a>
  {{end}}
</div>
<h2>Latest reviews</h2>
<ul>
  {{range $p.RecentReviews}}
  <li>{{stars .Rating}} {{deref .Comment}} <span class="muted">on {{deref .ListingName}} by {{deref .AuthorUsername}}</span></li>
  {{end}}
</ul>
<h2>Experiences</h2>
<div class="grid">
  {{range $p.Experiences}}
  <div class="card"><div class="body"><strong>{{.Title}}</strong><div class="muted">{{deref .Location}}</div></div></div>
  {{end}}
</div>
{{end}}`,

	"listings/index": `{{define "content"}}
<h1>All listings</h1>
<div class="grid">
  {{range .Data}}
  <a class="card" href="/listings/{{.ID}}">
    {{with .ImageURL}}<img src="{{.}}" alt="" />{{end}}
    <div class="body">
      <strong>{{.Name}}</strong>
      <div class="muted">{{deref .Location}}{{with .Country}}, {{.}}{{end}}</div>
      {{with .Price}}<div>&#8377;{{.}} / night</div>{{end}}
      <div class="muted">{{avg .AvgRating}} rating</div>
    </div>
  </a>
  {{end}}
</div>
{{end}}`,

	"listings/show": `{{define "content"}}
{{$l := .Data}}
<h1>{{$l.Name}}</h1>
{{with $l.ImageURL}}<img src="{{.}}" alt="" style="max-width:100%;border-radius:12px" />{{end}}
<p class="muted">Hosted by {{if $l.Owner}}{{$l.Owner.Username}}{{else}}unknown{{end}}</p>
<p>{{deref $l.Description}}</p>
<p>{{deref $l.Location}}{{with $l.Country}}, {{.}}{{end}}</p>
{{with $l.Price}}<p><strong>&#8377;{{.}}</strong> / night</p>{{end}}
{{with $l.Amenities}}<p class="muted">Amenities: {{join . ", "}}</p>{{end}}
<div id="map" data-token="{{$.MapToken}}" data-lng="{{index (coords $l) 0}}" data-lat="{{index (coords $l) 1}}"></div>

{{if and $.CurrentUser (eq $.CurrentUser.ID $l.OwnerID)}}
<a class="btn" href="/listings/{{$l.ID}}/edit">Edit</a>
<form method="POST" action="/listings/{{$l.ID}}" style="display:inline">
  <input type="hidden" name="_method" value="DELETE" />
  <button type="submit">Delete</button>
</form>
{{end}}

<h2>Reviews</h2>
{{range $l.Reviews}}
<div class="card"><div class="body">
  <strong>@{{deref .AuthorUsername}}</strong> {{stars .Rating}}
  <p>{{deref .Comment}}</p>
  {{if and $.CurrentUser (eq $.CurrentUser.ID .AuthorID)}}
  <form method="POST" action="/listings/{{$l.ID}}/reviews/{{.ID}}">
    <input type="hidden" name="_method" value="DELETE" />
    <button type="submit">Delete</button>
  </form>
  {{end}}
</div></div>
{{end}}

{{if $.CurrentUser}}
<h3>Leave a review</h3>
<form class="stack" method="POST" action="/listings/{{$l.ID}}/reviews">
  <label>Rating</label>
  <input type="range" name="rating" min="0" max="5" value="0" />
  <label>Comment</label>
  <textarea name="comment" rows="4"></textarea>
  <button type="submit">Submit</button>
</form>
{{end}}
{{end}}`,

	"listings/new": `{{define "content"}}
<h1>Create a new listing</h1>
<form class="stack" method="POST" action="/listings" enctype="multipart/form-data">
  <label>Title</label><input name="name" required />
  <label>Description</label><textarea name="description" rows="4"></textarea>
  <label>Image</label><input type="file" name="image" accept="image/*" />
  <label>Price</label><input name="price" type="number" step="0.01" min="0" />
  <label>Location</label><input name="location" />
  <label>Country</label><input name="country" />
  <button type="submit">Add</button>
</form>
{{end}}`,

	"listings/edit": `{{define "content"}}
{{$l := .Data}}
<h1>Edit your listing</h1>
<form class="stack" method="POST" action="/listings/{{$l.ID}}" enctype="multipart/form-data">
  <input type="hidden" name="_method" value="PUT" />
  <label>Title</label><input name="name" value="{{$l.Name}}" required />
  <label>Description</label><textarea name="description" rows="4">{{deref $l.Description}}</textarea>
  <label>Replace image</label><input type="file" name="image" accept="image/*" />
  <label>Price</label><input name="price" type="number" step="0.01" min="0" value="{{with $l.Price}}{{.}}{{end}}" />
  <label>Location</label><input name="location" value="{{deref $l.Location}}" />
  <label>Country</label><input name="country" value="{{deref $l.Country}}" />
  <button type="submit">Save</button>
</form>
{{end}}`,

	"users/signup": `{{define "content"}}
<h1>Sign up on Wanderlust</h1>
<form class="stack" method="POST" action="/signup">
  <label>Username</label><input name="username" required />
  <label>Email</label><input name="email" type="email" required />
  <label>Password</label><input name="password" type="password" required />
  <button type="submit">Sign up</button>
</form>
{{end}}`,

	"users/login": `{{define "content"}}
<h1>Log in</h1>
<form class="stack" method="POST" action="/users/login">
  <label>Username</label><input name="username" required />
  <label>Password</label><input name="password" type="password" required />
  <button type="submit">Log in</button>
</form>
<p class="muted"><a href="/users/forgot">Forgot your password?</a></p>
{{end}}`,

	"users/forgot": `{{define "content"}}
<h1>Reset your password</h1>
<form class="stack" method="POST" action="/users/forgot">
  <label>Email</label><input name="email" type="email" required />
  <button type="submit">Send reset code</button>
</form>
{{end}}`,

	"users/reset": `{{define "content"}}
<h1>Enter your reset code</h1>
<form class="stack" method="POST" action="/users/reset">
  <label>Email</label><input name="email" type="email" required />
  <label>Code</label><input name="otp" required />
  <label>New password</label><input name="password" type="password" required />
  <button type="submit">Change password</button>
</form>
{{end}}`,

	"favorites/index": `{{define "content"}}
<h1>Saved listings</h1>
{{if not .Data}}<p class="muted">Nothing saved yet.</p>{{end}}
<div class="grid">
  {{range .Data}}
  <a class="card" href="/listings/{{.ListingID}}">
    {{with .ImageURL}}<img src="{{.}}" alt="" />{{end}}
    <div class="body">
      <strong>{{.ListingName}}</strong>
      <div class="muted">{{deref .Location}}{{with .Country}}, {{.}}{{end}}</div>
    </div>
  </a>
  {{end}}
</div>
{{end}}`,

	"experiences/index": `{{define "content"}}
<h1>Experiences</h1>
<div class="grid">
  {{range .Data}}
  <div class="card">
    {{with .ImageURL}}<img src="{{.}}" alt="" />{{end}}
    <div class="body">
      <strong>{{.Title}}</strong>
      <div class="muted">{{deref .Location}}</div>
      <p>{{deref .Description}}</p>
      {{with .Price}}<div>&#8377;{{.}}</div>{{end}}
    </div>
  </div>
  {{end}}
</div>
{{end}}`,

	"error": `{{define "content"}}
<h1>Something went wrong</h1>
<p class="muted">{{.Data}}</p>
<a class="btn" href="/listings">Back to listings</a>
{{end}}`,
}
