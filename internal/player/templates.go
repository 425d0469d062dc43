package player

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
* { box-sizing: border-box; }

html, body {
  margin: 0;
  padding: 0;
  width: 100%;
  height: 100%;
  overflow: hidden;
  background: #000;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
}

.slide-container {
  position: relative;
  width: 100%;
  height: 100%;
}

.slide-frame {
  position: absolute;
  inset: 0;
  width: 100%;
  height: 100%;
  border: none;
  background: #fff;
}

.transition-fade { transition: opacity 0.4s ease; }
.transition-fade.entering { opacity: 0; }
.transition-slide { transition: transform 0.4s ease, opacity 0.4s ease; }
.transition-slide.entering { transform: translateX(40px); opacity: 0; }

.drawing-canvas {
  position: absolute;
  inset: 0;
  z-index: 10;
  pointer-events: none;
}

.drawing-canvas.active { pointer-events: auto; cursor: crosshair; }
.drawing-canvas.erasing { cursor: cell; }

.marker {
  position: absolute;
  width: 14px;
  height: 14px;
  margin: -7px 0 0 -7px;
  border-radius: 50%;
  background: #f44336;
  box-shadow: 0 0 8px rgba(244, 67, 54, 0.8);
  pointer-events: none;
  z-index: 11;
}

.empty-message {
  position: absolute;
  inset: 0;
  display: flex;
  align-items: center;
  justify-content: center;
  color: #bbb;
  font-size: 28px;
}

.loading {
  position: absolute;
  top: 50%;
  left: 50%;
  transform: translate(-50%, -50%);
  color: #fff;
  font-size: 18px;
  z-index: 5;
  display: none;
}

.toolbar {
  position: fixed;
  bottom: 30px;
  left: 30px;
  display: flex;
  gap: 10px;
  align-items: center;
  padding: 10px 20px;
  background: rgba(0, 0, 0, 0.7);
  border-radius: 25px;
  z-index: 100;
}

.tool-btn {
  padding: 8px 14px;
  border: none;
  border-radius: 15px;
  background: rgba(255, 255, 255, 0.2);
  color: #fff;
  font-size: 14px;
  cursor: pointer;
}

.tool-btn.active { background: #2196f3; }

.color-picker {
  width: 24px;
  height: 24px;
  border-radius: 50%;
  border: 2px solid transparent;
  cursor: pointer;
}

.color-picker.active { border-color: #fff; }

.fullscreen-btn {
  position: fixed;
  top: 20px;
  right: 20px;
  padding: 8px 12px;
  border: none;
  border-radius: 8px;
  background: rgba(0, 0, 0, 0.6);
  color: #fff;
  font-size: 18px;
  cursor: pointer;
  z-index: 100;
}

.progress-bar {
  position: fixed;
  left: 0;
  right: 0;
  bottom: 0;
  height: 4px;
  background: rgba(255, 255, 255, 0.2);
  z-index: 100;
}

.progress-fill {
  width: 0;
  height: 100%;
  background: #2196f3;
  transition: width 0.3s ease;
}

.side-nav {
  position: fixed;
  top: 50%;
  transform: translateY(-50%);
  display: flex;
  flex-direction: column;
  gap: 12px;
  padding: 10px;
  z-index: 100;
}

.left-nav { left: 10px; }
.right-nav { right: 10px; }

.side-nav button {
  min-width: 48px;
  height: 48px;
  border: none;
  border-radius: 24px;
  background: rgba(0, 0, 0, 0.5);
  color: #fff;
  font-size: 28px;
  cursor: pointer;
}

.side-nav button:disabled {
  opacity: 0.3;
  cursor: not-allowed;
}

.page-indicator {
  position: fixed;
  bottom: 30px;
  right: 30px;
  padding: 6px 14px;
  border-radius: 15px;
  background: rgba(0, 0, 0, 0.6);
  color: #fff;
  font-size: 14px;
  z-index: 100;
}

.controls-hidden .toolbar,
.controls-hidden .side-nav { display: none; }

@media (max-width: 768px) {
  .toolbar { bottom: 20px; left: 20px; padding: 8px 15px; gap: 8px; }
  .tool-btn { padding: 6px 10px; font-size: 12px; }
  .side-nav button { min-width: 40px; height: 40px; font-size: 24px; }
}
</style>
</head>
<body class="{{if not .Settings.ShowControls}}controls-hidden{{end}}">
<div class="slide-container" id="slideContainer">
{{- if .Count}}
  <div class="loading" id="loading">Loading...</div>
  <iframe id="slideFrame" class="slide-frame transition-{{.Settings.Transition}}" title="{{.Title}}"></iframe>
  <canvas id="drawingCanvas" class="drawing-canvas"></canvas>
{{- else}}
  <div class="empty-message" id="emptyMessage">No slides</div>
{{- end}}
</div>

<div class="toolbar" id="toolbar">
  <button class="tool-btn" id="penTool" type="button" onclick="setTool('pen')"{{if not .Count}} disabled{{end}}>Pen</button>
  <button class="tool-btn" id="eraserTool" type="button" onclick="setTool('eraser')"{{if not .Count}} disabled{{end}}>Eraser</button>
  <button class="tool-btn" id="clearTool" type="button" onclick="clearDrawing()"{{if not .Count}} disabled{{end}}>Clear</button>
  <button class="tool-btn active" id="markerTool" type="button" onclick="toggleMarkers()"{{if not .Count}} disabled{{end}}>Markers</button>
{{- range $i, $c := .Colors}}
  <div class="color-picker{{if eq $i 0}} active{{end}}" style="background: {{$c}}" data-color="{{$c}}" title="{{$c}}"></div>
{{- end}}
</div>

<button class="fullscreen-btn" type="button" onclick="toggleFullscreen()" title="Fullscreen">&#x26F6;</button>

<div class="progress-bar"><div class="progress-fill" id="progressFill"></div></div>

<div class="side-nav left-nav">
  <button type="button" class="nav-prev" onclick="previousSlide()" title="Previous"{{if le .Count 1}} disabled{{end}}>&lsaquo;</button>
</div>
<div class="side-nav right-nav">
  <button type="button" class="nav-next" onclick="nextSlide()" title="Next"{{if le .Count 1}} disabled{{end}}>&rsaquo;</button>
</div>

<div class="page-indicator" id="pageIndicator"><span id="currentSlide">{{if .Count}}1{{else}}0{{end}}</span> / <span id="totalSlides">{{.Count}}</span></div>

<script>
(function () {
  'use strict';

  var slides = {{.Slides}};
  var settings = {{.Settings}};
  var colors = {{.Colors}};

  var current = 0;
  var drawMode = false;
  var tool = 'pen';
  var penColor = colors[0];
  var markersOn = true;
  var drawing = false;
  var drawings = {};
  var autoTimer = null;

  var container = document.getElementById('slideContainer');
  var frame = document.getElementById('slideFrame');
  var canvas = document.getElementById('drawingCanvas');
  var loading = document.getElementById('loading');
  var progress = document.getElementById('progressFill');
  var pageNumber = document.getElementById('currentSlide');
  var ctx = canvas ? canvas.getContext('2d') : null;

  function canNavigate() {
    return slides.length > 1;
  }

  function updateNavigation() {
    var prev = document.querySelectorAll('.nav-prev');
    var next = document.querySelectorAll('.nav-next');
    var i;
    for (i = 0; i < prev.length; i++) {
      prev[i].disabled = !canNavigate() || (!settings.loop && current === 0);
    }
    for (i = 0; i < next.length; i++) {
      next[i].disabled = !canNavigate() || (!settings.loop && current === slides.length - 1);
    }
  }

  function updateProgress() {
    if (!slides.length) {
      progress.style.width = '0';
      return;
    }
    progress.style.width = ((current + 1) * 100 / slides.length) + '%';
  }

  function clearMarkers() {
    var dots = container.querySelectorAll('.marker');
    for (var i = 0; i < dots.length; i++) {
      dots[i].parentNode.removeChild(dots[i]);
    }
  }

  function addMarker(x, y) {
    var dot = document.createElement('div');
    dot.className = 'marker';
    dot.style.left = x + 'px';
    dot.style.top = y + 'px';
    container.appendChild(dot);
  }

  function saveDrawing() {
    if (!ctx) {
      return;
    }
    var entry = drawings[current] || { image: null, markers: [] };
    entry.image = canvas.toDataURL();
    drawings[current] = entry;
  }

  function restoreDrawing(index) {
    if (!ctx) {
      return;
    }
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    clearMarkers();
    var entry = drawings[index];
    if (!entry) {
      return;
    }
    if (entry.image) {
      var img = new Image();
      img.onload = function () {
        ctx.drawImage(img, 0, 0);
      };
      img.src = entry.image;
    }
    for (var i = 0; i < entry.markers.length; i++) {
      addMarker(entry.markers[i].x, entry.markers[i].y);
    }
  }

  function resizeCanvas() {
    if (!canvas) {
      return;
    }
    canvas.width = container.clientWidth;
    canvas.height = container.clientHeight;
    ctx.lineCap = 'round';
    ctx.lineJoin = 'round';
    ctx.lineWidth = 3;
    ctx.strokeStyle = penColor;
  }

  function scheduleAutoPlay() {
    if (autoTimer) {
      clearTimeout(autoTimer);
      autoTimer = null;
    }
    if (!settings.autoPlay || !canNavigate()) {
      return;
    }
    if (!settings.loop && current === slides.length - 1) {
      return;
    }
    autoTimer = setTimeout(nextSlide, slides[current].duration);
  }

  function showSlide(index) {
    if (!frame || index < 0 || index >= slides.length) {
      return;
    }
    saveDrawing();
    current = index;
    loading.style.display = 'block';
    if (settings.transition !== 'none') {
      frame.classList.add('entering');
    }
    frame.src = slides[index].src;
    pageNumber.textContent = String(index + 1);
    updateProgress();
    updateNavigation();
    restoreDrawing(index);
    scheduleAutoPlay();
  }

  function nextSlide() {
    if (current < slides.length - 1) {
      showSlide(current + 1);
    } else if (settings.loop && canNavigate()) {
      showSlide(0);
    }
  }

  function previousSlide() {
    if (current > 0) {
      showSlide(current - 1);
    } else if (settings.loop && canNavigate()) {
      showSlide(slides.length - 1);
    }
  }

  function setTool(name) {
    if (!canvas) {
      return;
    }
    if (drawMode && tool === name) {
      drawMode = false;
    } else {
      drawMode = true;
      tool = name;
    }
    canvas.classList.toggle('active', drawMode);
    canvas.classList.toggle('erasing', drawMode && tool === 'eraser');
    document.getElementById('penTool').classList.toggle('active', drawMode && tool === 'pen');
    document.getElementById('eraserTool').classList.toggle('active', drawMode && tool === 'eraser');
  }

  function toggleDrawMode() {
    setTool(drawMode ? tool : 'pen');
  }

  function clearDrawing() {
    if (!ctx) {
      return;
    }
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    clearMarkers();
    delete drawings[current];
  }

  function toggleMarkers() {
    markersOn = !markersOn;
    document.getElementById('markerTool').classList.toggle('active', markersOn);
  }

  function setColor(color) {
    penColor = color;
    if (ctx) {
      ctx.strokeStyle = color;
    }
    var pickers = document.querySelectorAll('.color-picker');
    for (var i = 0; i < pickers.length; i++) {
      pickers[i].classList.toggle('active', pickers[i].getAttribute('data-color') === color);
    }
  }

  function toggleFullscreen() {
    if (!document.fullscreenElement) {
      if (document.documentElement.requestFullscreen) {
        document.documentElement.requestFullscreen();
      }
    } else if (document.exitFullscreen) {
      document.exitFullscreen();
    }
  }

  function pointerPos(e) {
    var rect = canvas.getBoundingClientRect();
    return { x: e.clientX - rect.left, y: e.clientY - rect.top };
  }

  function erase(pos) {
    ctx.save();
    ctx.globalCompositeOperation = 'destination-out';
    ctx.beginPath();
    ctx.arc(pos.x, pos.y, 20, 0, 2 * Math.PI);
    ctx.fill();
    ctx.restore();
  }

  function startStroke(e) {
    if (!drawMode) {
      return;
    }
    var pos = pointerPos(e);
    drawing = true;
    if (tool === 'pen') {
      ctx.strokeStyle = penColor;
      ctx.beginPath();
      ctx.moveTo(pos.x, pos.y);
    } else {
      erase(pos);
    }
  }

  function continueStroke(e) {
    if (!drawing || !drawMode) {
      return;
    }
    var pos = pointerPos(e);
    if (tool === 'pen') {
      ctx.lineTo(pos.x, pos.y);
      ctx.stroke();
    } else {
      erase(pos);
    }
  }

  function endStroke() {
    if (!drawing) {
      return;
    }
    drawing = false;
    ctx.beginPath();
    saveDrawing();
  }

  function guardAnchors() {
    try {
      var doc = frame.contentDocument || frame.contentWindow.document;
      var links = doc.getElementsByTagName('a');
      for (var i = 0; i < links.length; i++) {
        links[i].addEventListener('click', function (e) {
          var href = this.getAttribute('href') || '';
          if (href.charAt(0) === '#') {
            e.preventDefault();
          }
        });
      }
    } catch (err) {
      return;
    }
  }

  window.setTool = setTool;
  window.clearDrawing = clearDrawing;
  window.toggleMarkers = toggleMarkers;
  window.toggleFullscreen = toggleFullscreen;
  window.nextSlide = nextSlide;
  window.previousSlide = previousSlide;

  var pickers = document.querySelectorAll('.color-picker');
  for (var p = 0; p < pickers.length; p++) {
    pickers[p].addEventListener('click', function () {
      setColor(this.getAttribute('data-color'));
    });
  }

  updateNavigation();
  updateProgress();

  if (!slides.length) {
    return;
  }

  frame.addEventListener('load', function () {
    loading.style.display = 'none';
    frame.classList.remove('entering');
    guardAnchors();
  });

  canvas.addEventListener('mousedown', startStroke);
  canvas.addEventListener('mousemove', continueStroke);
  canvas.addEventListener('mouseup', endStroke);
  canvas.addEventListener('mouseout', endStroke);

  canvas.addEventListener('touchstart', function (e) {
    if (!drawMode) {
      return;
    }
    e.preventDefault();
    startStroke(e.touches[0]);
  });
  canvas.addEventListener('touchmove', function (e) {
    if (!drawMode) {
      return;
    }
    e.preventDefault();
    continueStroke(e.touches[0]);
  });
  canvas.addEventListener('touchend', function (e) {
    if (!drawMode) {
      return;
    }
    e.preventDefault();
    endStroke();
  });

  container.addEventListener('dblclick', function (e) {
    if (!markersOn) {
      return;
    }
    var rect = container.getBoundingClientRect();
    var x = e.clientX - rect.left;
    var y = e.clientY - rect.top;
    addMarker(x, y);
    saveDrawing();
    drawings[current].markers.push({ x: x, y: y });
  });

  document.addEventListener('keydown', function (e) {
    if ((e.ctrlKey || e.metaKey) && (e.key === 'c' || e.key === 'C')) {
      e.preventDefault();
      clearDrawing();
      return;
    }
    switch (e.key) {
    case 'ArrowRight':
    case 'PageDown':
    case ' ':
      e.preventDefault();
      nextSlide();
      break;
    case 'ArrowLeft':
    case 'PageUp':
      e.preventDefault();
      previousSlide();
      break;
    case 'Home':
      showSlide(0);
      break;
    case 'End':
      showSlide(slides.length - 1);
      break;
    case 'f':
    case 'F':
      toggleFullscreen();
      break;
    case 'd':
    case 'D':
      toggleDrawMode();
      break;
    }
  });

  var wheelTimer = null;
  container.addEventListener('wheel', function (e) {
    if (drawMode) {
      return;
    }
    e.preventDefault();
    if (wheelTimer) {
      clearTimeout(wheelTimer);
    }
    var delta = e.deltaY;
    wheelTimer = setTimeout(function () {
      if (delta > 0) {
        nextSlide();
      } else if (delta < 0) {
        previousSlide();
      }
    }, 150);
  }, { passive: false });

  var touchStartX = 0;
  document.addEventListener('touchstart', function (e) {
    touchStartX = e.changedTouches[0].screenX;
  });
  document.addEventListener('touchend', function (e) {
    if (drawMode) {
      return;
    }
    var endX = e.changedTouches[0].screenX;
    if (endX < touchStartX - 50) {
      nextSlide();
    } else if (endX > touchStartX + 50) {
      previousSlide();
    }
  });

  window.addEventListener('resize', function () {
    saveDrawing();
    resizeCanvas();
    restoreDrawing(current);
  });

  resizeCanvas();
  showSlide(0);
})();
</script>
</body>
</html>
`
