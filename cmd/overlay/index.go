package main

// Inline overlay page. It opens a socket back to this process and swaps the
// tab title, body and favicon whenever a new state arrives. If the socket to
// this process dies the page shows its own stale marker; that is separate
// from the upstream disconnected flag, which is part of the pushed state.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>Session Win Rate</title>
  <link id="favicon" rel="icon" href="/favicon.ico"/>
  <style>
    body{font-family:system-ui,sans-serif;background:#14171c;color:#e8e8e8;margin:0;
         display:flex;min-height:100vh;align-items:center;justify-content:center}
    .wrap{text-align:center}
    .rate{font-size:72px;font-weight:700}
    .tally{margin-top:8px;color:#9aa3ad}
    .banner{margin-bottom:12px;padding:8px 14px;border-radius:6px;background:#5c2020;color:#ffb3b3}
    .foot{position:fixed;bottom:8px;right:12px;color:#566070;font-size:12px}
  </style>
</head>
<body>
  <div class="wrap" id="content"><div class="rate">n/a</div><div class="tally">waiting for battles...</div></div>
  <div class="foot">v{{BUILD_VERSION}}</div>
  <script>
    const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    const sock = new WebSocket(proto + location.host + '/ws');
    sock.onmessage = (ev) => {
      const msg = JSON.parse(ev.data);
      if (msg.type !== 'overlay') return;
      const st = msg.data;
      document.title = st.title;
      document.getElementById('content').innerHTML = st.content;
      document.getElementById('favicon').href = st.favicon;
    };
    sock.onclose = () => { document.title = '[stale] ' + document.title; };
  </script>
</body>
</html>`
