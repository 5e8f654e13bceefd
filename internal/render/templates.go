package render

const overlayHTML = `{{range .View.Questions}}<div class="quiz-question" data-question="{{.ID}}">
  <div class="question-title">Q{{.Number}}: {{.Text}}</div>
  <div class="options-container">
    {{- $q := .}}{{range $idx, $opt := .Options}}
    <div class="option{{if $opt.Disabled}} disabled{{end}}{{if eq $opt.Mark "correct"}} correct-answer{{else if eq $opt.Mark "incorrect"}} wrong-answer{{end}}">
      <input type="radio" id="{{$opt.ID}}" name="question_{{$q.ID}}" value="{{$idx}}" data-question="{{$q.ID}}"{{if $opt.Checked}} checked{{end}}{{if $opt.Disabled}} disabled{{end}}>
      <label for="{{$opt.ID}}" class="option-label">{{$opt.Text}}</label>
    </div>
    {{- end}}
  </div>
  <div id="feedback_{{.ID}}" class="answer-feedback">{{if eq .Feedback.Kind "correct"}}<span class="feedback-correct"><strong>{{.Feedback.Marker}}</strong> {{.Feedback.Explanation}}</span>{{else if eq .Feedback.Kind "incorrect"}}<span class="feedback-incorrect"><strong>{{.Feedback.Marker}}</strong> {{.Feedback.Explanation}}</span>{{end}}</div>
</div>
{{end}}`

const triggerHTML = `<button id="{{.TriggerID}}" class="quiz-trigger" type="button" title="Click to see multiple choice questions">&#128221; Questions</button>`

const shellHTML = `
<style>
  .quiz-trigger { position: fixed; bottom: 30px; right: 30px; background-color: #007bff; color: #fff; border: none; padding: 12px 20px; border-radius: 50px; cursor: pointer; font-size: 16px; font-weight: bold; box-shadow: 0 4px 12px rgba(0, 123, 255, 0.4); z-index: 99; font-family: inherit; }
  #{{.OverlayID}} { position: fixed; inset: 0; background: rgba(0, 0, 0, 0.5); align-items: center; justify-content: center; z-index: 10000; }
  #{{.OverlayID}} .quiz-panel { background: #fff; max-width: 760px; width: 90%; max-height: 85vh; overflow-y: auto; border-radius: 10px; padding: 24px; }
  .quiz-question { margin-bottom: 20px; }
  .option { padding: 6px 10px; border: 1px solid #ddd; border-radius: 6px; margin: 4px 0; }
  .option.correct-answer { border-color: #28a745; background: #e9f7ec; }
  .option.wrong-answer { border-color: #dc3545; background: #fbeaec; }
  .option.disabled, .option.disabled input[type="radio"], .option.disabled .option-label { cursor: not-allowed; opacity: 0.8; }
  .feedback-correct { color: #28a745; }
  .feedback-incorrect { color: #dc3545; }
</style>
{{.Trigger}}
<div id="{{.OverlayID}}" style="display: {{if .Visible}}flex{{else}}none{{end}};" data-page="{{.PageKey}}" data-api="{{.APIBase}}">
  <div class="quiz-panel">
    <div class="quiz-actions">
      <button type="button" data-quiz-action="reset">Reset</button>
      <button type="button" data-quiz-action="close">Close</button>
    </div>
    <div id="{{.ContainerID}}">{{.Overlay}}</div>
  </div>
</div>
<script>
(function () {
  var overlay = document.getElementById({{.OverlayID}});
  var container = document.getElementById({{.ContainerID}});
  var trigger = document.getElementById({{.TriggerID}});
  var page = overlay.dataset.page;
  var api = overlay.dataset.api;

  function call(action, extra) {
    var body = Object.assign({page: page}, extra || {});
    return fetch(api + "/" + action, {
      method: "POST",
      credentials: "same-origin",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify(body)
    }).then(function (resp) { return resp.ok ? resp.json() : null; })
      .then(function (data) {
        if (!data) { return; }
        container.innerHTML = data.overlay_html;
        overlay.style.display = data.view.visible ? "flex" : "none";
      })
      .catch(function (err) { console.error("quiz request failed", err); });
  }

  trigger.addEventListener("click", function () { call("open"); });
  overlay.addEventListener("click", function (event) {
    if (event.target === overlay) { call("close"); return; }
    var action = event.target.getAttribute("data-quiz-action");
    if (action) { call(action); }
  });
  container.addEventListener("change", function (event) {
    var input = event.target;
    if (input.type !== "radio") { return; }
    call("answers", {question_id: Number(input.dataset.question), option: Number(input.value)});
  });
})();
</script>
`
